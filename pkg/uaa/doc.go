// Package uaa holds the request and response types of the UAA identity zone
// and SCIM user APIs and the operation interfaces implemented by the client.
//
// Requests that embed IdentityZoned run against the zone they name through
// the X-Identity-Zone-Id or X-Identity-Zone-Subdomain header.
package uaa

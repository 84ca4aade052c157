// Package cfv2 holds the request and response types of the Cloud Controller
// v2 API and the operation interfaces implemented by the client.
//
// Requests are plain values. Path identifiers are tagged `json:"-" url:"-"`,
// query parameters carry `url` tags and body fields carry `json` tags. Every
// request implements cfapi.Validatable; required fields are declared with
// `validate:"required"`.
//
// List operations return a PaginatedResponse. RequestResources fetches every
// page of a list and NewPageIterator walks one lazily.
package cfv2

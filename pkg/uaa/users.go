package uaa

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// IfMatchHeader carries the expected resource version on SCIM writes.
const IfMatchHeader = "If-Match"

// AnyVersion matches every resource version.
const AnyVersion = "*"

// SortOrder is the SCIM sort direction.
type SortOrder string

// Sort orders.
const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

// Meta is the SCIM resource metadata.
type Meta struct {
	Version      int    `json:"version"                yaml:"version"`
	Created      string `json:"created,omitempty"      yaml:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
}

// Name is the user's full name.
type Name struct {
	FamilyName string `json:"familyName,omitempty" yaml:"familyName,omitempty"`
	GivenName  string `json:"givenName,omitempty"  yaml:"givenName,omitempty"`
}

// Email is one of the user's addresses.
type Email struct {
	Value   string `json:"value"             yaml:"value"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// PhoneNumber is one of the user's phone numbers.
type PhoneNumber struct {
	Value string `json:"value" yaml:"value"`
}

// Group is a group membership of a user.
type Group struct {
	Value   string `json:"value"             yaml:"value"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
}

// Approval is a scope approval granted by a user.
type Approval struct {
	UserID        string `json:"userId"                  yaml:"userId"`
	ClientID      string `json:"clientId"                yaml:"clientId"`
	Scope         string `json:"scope"                   yaml:"scope"`
	Status        string `json:"status"                  yaml:"status"`
	LastUpdatedAt string `json:"lastUpdatedAt,omitempty" yaml:"lastUpdatedAt,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"     yaml:"expiresAt,omitempty"`
}

// User is a SCIM user.
type User struct {
	ID                   string        `json:"id"                             yaml:"id"`
	ExternalID           string        `json:"externalId,omitempty"           yaml:"externalId,omitempty"`
	Meta                 *Meta         `json:"meta,omitempty"                 yaml:"meta,omitempty"`
	UserName             string        `json:"userName"                       yaml:"userName"`
	Name                 *Name         `json:"name,omitempty"                 yaml:"name,omitempty"`
	Emails               []Email       `json:"emails,omitempty"               yaml:"emails,omitempty"`
	PhoneNumbers         []PhoneNumber `json:"phoneNumbers,omitempty"         yaml:"phoneNumbers,omitempty"`
	Groups               []Group       `json:"groups,omitempty"               yaml:"groups,omitempty"`
	Approvals            []Approval    `json:"approvals,omitempty"            yaml:"approvals,omitempty"`
	Active               *bool         `json:"active,omitempty"               yaml:"active,omitempty"`
	Verified             *bool         `json:"verified,omitempty"             yaml:"verified,omitempty"`
	Origin               string        `json:"origin,omitempty"               yaml:"origin,omitempty"`
	ZoneID               string        `json:"zoneId,omitempty"               yaml:"zoneId,omitempty"`
	PasswordLastModified string        `json:"passwordLastModified,omitempty" yaml:"passwordLastModified,omitempty"`
	PreviousLogonTime    int64         `json:"previousLogonTime,omitempty"    yaml:"previousLogonTime,omitempty"`
	LastLogonTime        int64         `json:"lastLogonTime,omitempty"        yaml:"lastLogonTime,omitempty"`
	Schemas              []string      `json:"schemas,omitempty"              yaml:"schemas,omitempty"`
}

// CreateUserRequest is the request for POST /Users.
type CreateUserRequest struct {
	IdentityZoned

	UserName     string        `json:"userName,omitempty"     label:"user name" validate:"required"`
	Password     string        `json:"password,omitempty"`
	Name         *Name         `json:"name,omitempty"`
	Emails       []Email       `json:"emails,omitempty"`
	PhoneNumbers []PhoneNumber `json:"phoneNumbers,omitempty"`
	Active       *bool         `json:"active,omitempty"`
	Verified     *bool         `json:"verified,omitempty"`
	Origin       string        `json:"origin,omitempty"`
	ExternalID   string        `json:"externalId,omitempty"`
	Schemas      []string      `json:"schemas,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r CreateUserRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// CreateUserResponse is the created user.
type CreateUserResponse = User

// GetUserRequest is the request for GET /Users/{id}.
type GetUserRequest struct {
	IdentityZoned

	UserID string `json:"-" url:"-" label:"user id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetUserRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetUserResponse is a single user.
type GetUserResponse = User

// ListUsersRequest is the request for GET /Users.
type ListUsersRequest struct {
	IdentityZoned

	// Filter is a SCIM filter expression, for example userName eq "bob".
	Filter     string    `json:"-" url:"filter,omitempty"`
	SortBy     string    `json:"-" url:"sortBy,omitempty"`
	SortOrder  SortOrder `json:"-" url:"sortOrder,omitempty"     validate:"omitempty,oneof=ascending descending" label:"sort order"`
	StartIndex *int      `json:"-" url:"startIndex,omitempty"    validate:"omitempty,min=1"                      label:"start index"`
	Count      *int      `json:"-" url:"count,omitempty"         validate:"omitempty,min=0"`
	// Attributes limits the returned attributes.
	Attributes []string `json:"-" url:"attributes,omitempty,comma"`
}

// Validate implements cfapi.Validatable.
func (r ListUsersRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListUsersResponse is a page of SCIM users.
type ListUsersResponse struct {
	Resources    []User   `json:"resources"    yaml:"resources"`
	StartIndex   int      `json:"startIndex"   yaml:"startIndex"`
	ItemsPerPage int      `json:"itemsPerPage" yaml:"itemsPerPage"`
	TotalResults int      `json:"totalResults" yaml:"totalResults"`
	Schemas      []string `json:"schemas"      yaml:"schemas"`
}

// DeleteUserRequest is the request for DELETE /Users/{id}.
type DeleteUserRequest struct {
	IdentityZoned

	UserID string `json:"-" url:"-" label:"user id" validate:"required"`
	// Version is sent as If-Match. Empty matches any version.
	Version string `json:"-" url:"-"`
}

// Validate implements cfapi.Validatable.
func (r DeleteUserRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// Headers implements cfapi.HeaderProvider.
func (r DeleteUserRequest) Headers() map[string]string {
	headers := r.IdentityZoned.Headers()

	headers[IfMatchHeader] = r.Version
	if r.Version == "" {
		headers[IfMatchHeader] = AnyVersion
	}

	return headers
}

// DeleteUserResponse is the deleted user.
type DeleteUserResponse = User

// Users is the UAA SCIM users operation group.
type Users interface {
	Create(ctx context.Context, request CreateUserRequest) *cfapi.Future[CreateUserResponse]
	Get(ctx context.Context, request GetUserRequest) *cfapi.Future[GetUserResponse]
	List(ctx context.Context, request ListUsersRequest) *cfapi.Future[ListUsersResponse]
	Delete(ctx context.Context, request DeleteUserRequest) *cfapi.Future[DeleteUserResponse]
}

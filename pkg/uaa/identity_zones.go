package uaa

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// SigningKey is a token signing key of a zone.
type SigningKey struct {
	SigningKey string `json:"signingKey" yaml:"signingKey"`
}

// TokenPolicy controls the tokens a zone issues.
type TokenPolicy struct {
	AccessTokenValidity  *int                  `json:"accessTokenValidity,omitempty"  yaml:"accessTokenValidity,omitempty"`
	RefreshTokenValidity *int                  `json:"refreshTokenValidity,omitempty" yaml:"refreshTokenValidity,omitempty"`
	JWTRevocable         *bool                 `json:"jwtRevocable,omitempty"         yaml:"jwtRevocable,omitempty"`
	RefreshTokenUnique   *bool                 `json:"refreshTokenUnique,omitempty"   yaml:"refreshTokenUnique,omitempty"`
	RefreshTokenFormat   string                `json:"refreshTokenFormat,omitempty"   yaml:"refreshTokenFormat,omitempty"`
	ActiveKeyID          string                `json:"activeKeyId,omitempty"          yaml:"activeKeyId,omitempty"`
	Keys                 map[string]SigningKey `json:"keys,omitempty"                 yaml:"keys,omitempty"`
}

// LogoutLink configures where users land after logging out of a zone.
type LogoutLink struct {
	// DisableRedirectParameter disallows the redirect parameter on logout.
	DisableRedirectParameter *bool `json:"disableRedirectParameter,omitempty" yaml:"disableRedirectParameter,omitempty"`
	// RedirectParameterName renames the redirect parameter.
	RedirectParameterName string `json:"redirectParameterName,omitempty" yaml:"redirectParameterName,omitempty"`
	// RedirectURL is the default logout redirect.
	RedirectURL string `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty"`
	// Whitelist lists the allowed redirect targets.
	Whitelist []string `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
}

// SelfServiceLinks configures the signup and password reset links.
type SelfServiceLinks struct {
	SelfServiceLinksEnabled *bool  `json:"selfServiceLinksEnabled,omitempty" yaml:"selfServiceLinksEnabled,omitempty"`
	Signup                  string `json:"signup,omitempty"                  yaml:"signup,omitempty"`
	Password                string `json:"passwd,omitempty"                  yaml:"passwd,omitempty"`
}

// Links groups the zone's user facing links.
type Links struct {
	Logout       *LogoutLink       `json:"logout,omitempty"       yaml:"logout,omitempty"`
	HomeRedirect string            `json:"homeRedirect,omitempty" yaml:"homeRedirect,omitempty"`
	SelfService  *SelfServiceLinks `json:"selfService,omitempty"  yaml:"selfService,omitempty"`
}

// Prompt is a login prompt field.
type Prompt struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Text string `json:"text" yaml:"text"`
}

// IdentityZoneConfiguration is the config block of a zone.
type IdentityZoneConfiguration struct {
	TokenPolicy           *TokenPolicy `json:"tokenPolicy,omitempty"           yaml:"tokenPolicy,omitempty"`
	Links                 *Links       `json:"links,omitempty"                 yaml:"links,omitempty"`
	Prompts               []Prompt     `json:"prompts,omitempty"               yaml:"prompts,omitempty"`
	IDPDiscoveryEnabled   *bool        `json:"idpDiscoveryEnabled,omitempty"   yaml:"idpDiscoveryEnabled,omitempty"`
	AccountChooserEnabled *bool        `json:"accountChooserEnabled,omitempty" yaml:"accountChooserEnabled,omitempty"`
	Issuer                string       `json:"issuer,omitempty"                yaml:"issuer,omitempty"`
}

// IdentityZone is a UAA identity zone.
type IdentityZone struct {
	ID            string                     `json:"id"                     yaml:"id"`
	Subdomain     string                     `json:"subdomain"              yaml:"subdomain"`
	Name          string                     `json:"name"                   yaml:"name"`
	Description   string                     `json:"description,omitempty"  yaml:"description,omitempty"`
	Version       int                        `json:"version"                yaml:"version"`
	Active        *bool                      `json:"active,omitempty"       yaml:"active,omitempty"`
	Configuration *IdentityZoneConfiguration `json:"config,omitempty"       yaml:"config,omitempty"`
	CreatedAt     int64                      `json:"created,omitempty"      yaml:"created,omitempty"`
	LastModified  int64                      `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// CreateIdentityZoneRequest is the request for POST /identity-zones.
type CreateIdentityZoneRequest struct {
	IdentityZoneID string                     `json:"id,omitempty"`
	Subdomain      string                     `json:"subdomain,omitempty"   validate:"required"`
	Name           string                     `json:"name,omitempty"        validate:"required"`
	Description    string                     `json:"description,omitempty"`
	Active         *bool                      `json:"active,omitempty"`
	Configuration  *IdentityZoneConfiguration `json:"config,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r CreateIdentityZoneRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// CreateIdentityZoneResponse is the created zone.
type CreateIdentityZoneResponse = IdentityZone

// GetIdentityZoneRequest is the request for GET /identity-zones/{id}.
type GetIdentityZoneRequest struct {
	IdentityZoneID string `json:"-" url:"-" label:"identity zone id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetIdentityZoneRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetIdentityZoneResponse is a single zone.
type GetIdentityZoneResponse = IdentityZone

// ListIdentityZonesRequest is the request for GET /identity-zones.
type ListIdentityZonesRequest struct{}

// Validate implements cfapi.Validatable.
func (r ListIdentityZonesRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidationResult{}
}

// ListIdentityZonesResponse lists every zone. UAA returns a bare array.
type ListIdentityZonesResponse = []IdentityZone

// UpdateIdentityZoneRequest is the request for PUT /identity-zones/{id}.
type UpdateIdentityZoneRequest struct {
	IdentityZoneID string                     `json:"id"                    url:"-" label:"identity zone id" validate:"required"`
	Subdomain      string                     `json:"subdomain,omitempty"   validate:"required"`
	Name           string                     `json:"name,omitempty"        validate:"required"`
	Description    string                     `json:"description,omitempty"`
	Version        *int                       `json:"version,omitempty"`
	Active         *bool                      `json:"active,omitempty"`
	Configuration  *IdentityZoneConfiguration `json:"config,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r UpdateIdentityZoneRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// UpdateIdentityZoneResponse is the updated zone.
type UpdateIdentityZoneResponse = IdentityZone

// DeleteIdentityZoneRequest is the request for DELETE /identity-zones/{id}.
type DeleteIdentityZoneRequest struct {
	IdentityZoneID string `json:"-" url:"-" label:"identity zone id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r DeleteIdentityZoneRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// DeleteIdentityZoneResponse is the deleted zone.
type DeleteIdentityZoneResponse = IdentityZone

// IdentityZones is the UAA identity zones operation group.
type IdentityZones interface {
	Create(ctx context.Context, request CreateIdentityZoneRequest) *cfapi.Future[CreateIdentityZoneResponse]
	Get(ctx context.Context, request GetIdentityZoneRequest) *cfapi.Future[GetIdentityZoneResponse]
	List(ctx context.Context, request ListIdentityZonesRequest) *cfapi.Future[ListIdentityZonesResponse]
	Update(ctx context.Context, request UpdateIdentityZoneRequest) *cfapi.Future[UpdateIdentityZoneResponse]
	Delete(ctx context.Context, request DeleteIdentityZoneRequest) *cfapi.Future[DeleteIdentityZoneResponse]
}

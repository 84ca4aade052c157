package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// OrganizationEntity is a v2 organization.
type OrganizationEntity struct {
	Name                      string `json:"name"                                    yaml:"name"`
	BillingEnabled            bool   `json:"billing_enabled"                         yaml:"billing_enabled"`
	QuotaDefinitionID         string `json:"quota_definition_guid"                   yaml:"quota_definition_guid"`
	Status                    string `json:"status"                                  yaml:"status"`
	DefaultIsolationSegmentID string `json:"default_isolation_segment_guid,omitempty" yaml:"default_isolation_segment_guid,omitempty"`
	QuotaDefinitionURL        string `json:"quota_definition_url,omitempty"          yaml:"quota_definition_url,omitempty"`
	SpacesURL                 string `json:"spaces_url,omitempty"                    yaml:"spaces_url,omitempty"`
	DomainsURL                string `json:"domains_url,omitempty"                   yaml:"domains_url,omitempty"`
	PrivateDomainsURL         string `json:"private_domains_url,omitempty"           yaml:"private_domains_url,omitempty"`
	UsersURL                  string `json:"users_url,omitempty"                     yaml:"users_url,omitempty"`
	ManagersURL               string `json:"managers_url,omitempty"                  yaml:"managers_url,omitempty"`
	BillingManagersURL        string `json:"billing_managers_url,omitempty"          yaml:"billing_managers_url,omitempty"`
	AuditorsURL               string `json:"auditors_url,omitempty"                  yaml:"auditors_url,omitempty"`
	ApplicationEventsURL      string `json:"app_events_url,omitempty"                yaml:"app_events_url,omitempty"`
	SpaceQuotaDefinitionsURL  string `json:"space_quota_definitions_url,omitempty"   yaml:"space_quota_definitions_url,omitempty"`
}

// OrganizationResource is an organization with its metadata.
type OrganizationResource = Resource[OrganizationEntity]

// CreateOrganizationRequest is the request for POST /v2/organizations.
type CreateOrganizationRequest struct {
	Name              string `json:"name,omitempty"                  validate:"required"`
	QuotaDefinitionID string `json:"quota_definition_guid,omitempty"`
	Status            string `json:"status,omitempty"                validate:"omitempty,oneof=active suspended"`
}

// Validate implements cfapi.Validatable.
func (r CreateOrganizationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// CreateOrganizationResponse is the created organization.
type CreateOrganizationResponse = OrganizationResource

// GetOrganizationRequest is the request for GET /v2/organizations/{id}.
type GetOrganizationRequest struct {
	OrganizationID string `json:"-" url:"-" label:"organization id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetOrganizationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetOrganizationResponse is a single organization.
type GetOrganizationResponse = OrganizationResource

// ListOrganizationsRequest is the request for GET /v2/organizations.
type ListOrganizationsRequest struct {
	PaginatedRequest

	Names             FilterParameter `json:"-" url:"name,omitempty"`
	SpaceIDs          FilterParameter `json:"-" url:"space_guid,omitempty"`
	Statuses          FilterParameter `json:"-" url:"status,omitempty"`
	UserIDs           FilterParameter `json:"-" url:"user_guid,omitempty"`
	ManagerIDs        FilterParameter `json:"-" url:"manager_guid,omitempty"`
	AuditorIDs        FilterParameter `json:"-" url:"auditor_guid,omitempty"`
	BillingManagerIDs FilterParameter `json:"-" url:"billing_manager_guid,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r ListOrganizationsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListOrganizationsResponse is a page of organizations.
type ListOrganizationsResponse = PaginatedResponse[OrganizationResource]

// DeleteOrganizationRequest is the request for DELETE /v2/organizations/{id}.
type DeleteOrganizationRequest struct {
	OrganizationID string `json:"-" url:"-"                   label:"organization id" validate:"required"`
	Async          *bool  `json:"-" url:"async,omitempty"`
	Recursive      *bool  `json:"-" url:"recursive,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r DeleteOrganizationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// DeleteOrganizationResponse is the deletion job. It is empty when the
// deletion ran synchronously.
type DeleteOrganizationResponse = JobResource

// Organizations is the v2 organizations operation group.
type Organizations interface {
	Create(ctx context.Context, request CreateOrganizationRequest) *cfapi.Future[CreateOrganizationResponse]
	Get(ctx context.Context, request GetOrganizationRequest) *cfapi.Future[GetOrganizationResponse]
	List(ctx context.Context, request ListOrganizationsRequest) *cfapi.Future[ListOrganizationsResponse]
	Delete(ctx context.Context, request DeleteOrganizationRequest) *cfapi.Future[DeleteOrganizationResponse]
}

package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// SpaceEntity is a v2 space.
type SpaceEntity struct {
	Name                 string  `json:"name"                             yaml:"name"`
	OrganizationID       string  `json:"organization_guid"                yaml:"organization_guid"`
	SpaceQuotaID         *string `json:"space_quota_definition_guid"      yaml:"space_quota_definition_guid"`
	IsolationSegmentID   *string `json:"isolation_segment_guid"           yaml:"isolation_segment_guid"`
	AllowSSH             bool    `json:"allow_ssh"                        yaml:"allow_ssh"`
	OrganizationURL      string  `json:"organization_url,omitempty"       yaml:"organization_url,omitempty"`
	DevelopersURL        string  `json:"developers_url,omitempty"         yaml:"developers_url,omitempty"`
	ManagersURL          string  `json:"managers_url,omitempty"           yaml:"managers_url,omitempty"`
	AuditorsURL          string  `json:"auditors_url,omitempty"           yaml:"auditors_url,omitempty"`
	ApplicationsURL      string  `json:"apps_url,omitempty"               yaml:"apps_url,omitempty"`
	RoutesURL            string  `json:"routes_url,omitempty"             yaml:"routes_url,omitempty"`
	DomainsURL           string  `json:"domains_url,omitempty"            yaml:"domains_url,omitempty"`
	ServiceInstancesURL  string  `json:"service_instances_url,omitempty"  yaml:"service_instances_url,omitempty"`
	ApplicationEventsURL string  `json:"app_events_url,omitempty"         yaml:"app_events_url,omitempty"`
	EventsURL            string  `json:"events_url,omitempty"             yaml:"events_url,omitempty"`
	SecurityGroupsURL    string  `json:"security_groups_url,omitempty"    yaml:"security_groups_url,omitempty"`
}

// SpaceResource is a space with its metadata.
type SpaceResource = Resource[SpaceEntity]

// CreateSpaceRequest is the request for POST /v2/spaces.
type CreateSpaceRequest struct {
	Name           string   `json:"name,omitempty"              validate:"required"`
	OrganizationID string   `json:"organization_guid,omitempty" label:"organization id" validate:"required"`
	AllowSSH       *bool    `json:"allow_ssh,omitempty"`
	DeveloperIDs   []string `json:"developer_guids,omitempty"`
	ManagerIDs     []string `json:"manager_guids,omitempty"`
	AuditorIDs     []string `json:"auditor_guids,omitempty"`
	SpaceQuotaID   string   `json:"space_quota_definition_guid,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r CreateSpaceRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// CreateSpaceResponse is the created space.
type CreateSpaceResponse = SpaceResource

// GetSpaceRequest is the request for GET /v2/spaces/{id}.
type GetSpaceRequest struct {
	SpaceID string `json:"-" url:"-" label:"space id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetSpaceRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetSpaceResponse is a single space.
type GetSpaceResponse = SpaceResource

// ListSpacesRequest is the request for GET /v2/spaces.
type ListSpacesRequest struct {
	PaginatedRequest

	Names           FilterParameter `json:"-" url:"name,omitempty"`
	OrganizationIDs FilterParameter `json:"-" url:"organization_guid,omitempty"`
	DeveloperIDs    FilterParameter `json:"-" url:"developer_guid,omitempty"`
	ApplicationIDs  FilterParameter `json:"-" url:"app_guid,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r ListSpacesRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListSpacesResponse is a page of spaces.
type ListSpacesResponse = PaginatedResponse[SpaceResource]

// DeleteSpaceRequest is the request for DELETE /v2/spaces/{id}.
type DeleteSpaceRequest struct {
	SpaceID   string `json:"-" url:"-"                   label:"space id" validate:"required"`
	Async     *bool  `json:"-" url:"async,omitempty"`
	Recursive *bool  `json:"-" url:"recursive,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r DeleteSpaceRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// DeleteSpaceResponse is the deletion job. It is empty when the deletion
// ran synchronously.
type DeleteSpaceResponse = JobResource

// Spaces is the v2 spaces operation group.
type Spaces interface {
	Create(ctx context.Context, request CreateSpaceRequest) *cfapi.Future[CreateSpaceResponse]
	Get(ctx context.Context, request GetSpaceRequest) *cfapi.Future[GetSpaceResponse]
	List(ctx context.Context, request ListSpacesRequest) *cfapi.Future[ListSpacesResponse]
	Delete(ctx context.Context, request DeleteSpaceRequest) *cfapi.Future[DeleteSpaceResponse]
}

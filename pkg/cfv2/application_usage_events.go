package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// ApplicationUsageEventEntity records a change in an app's billable state.
type ApplicationUsageEventEntity struct {
	State                         string  `json:"state"                                        yaml:"state"`
	PreviousState                 *string `json:"previous_state,omitempty"                     yaml:"previous_state,omitempty"`
	MemoryInMBPerInstance         int     `json:"memory_in_mb_per_instance"                    yaml:"memory_in_mb_per_instance"`
	PreviousMemoryInMBPerInstance *int    `json:"previous_memory_in_mb_per_instance,omitempty" yaml:"previous_memory_in_mb_per_instance,omitempty"`
	InstanceCount                 int     `json:"instance_count"                               yaml:"instance_count"`
	PreviousInstanceCount         *int    `json:"previous_instance_count,omitempty"            yaml:"previous_instance_count,omitempty"`
	ApplicationID                 string  `json:"app_guid"                                     yaml:"app_guid"`
	ApplicationName               string  `json:"app_name"                                     yaml:"app_name"`
	SpaceID                       string  `json:"space_guid"                                   yaml:"space_guid"`
	SpaceName                     string  `json:"space_name"                                   yaml:"space_name"`
	OrganizationID                string  `json:"org_guid"                                     yaml:"org_guid"`
	BuildpackID                   *string `json:"buildpack_guid,omitempty"                     yaml:"buildpack_guid,omitempty"`
	BuildpackName                 *string `json:"buildpack_name,omitempty"                     yaml:"buildpack_name,omitempty"`
	PackageState                  string  `json:"package_state,omitempty"                      yaml:"package_state,omitempty"`
	PreviousPackageState          *string `json:"previous_package_state,omitempty"             yaml:"previous_package_state,omitempty"`
	ParentApplicationID           *string `json:"parent_app_guid,omitempty"                    yaml:"parent_app_guid,omitempty"`
	ParentApplicationName         *string `json:"parent_app_name,omitempty"                    yaml:"parent_app_name,omitempty"`
	ProcessType                   string  `json:"process_type,omitempty"                       yaml:"process_type,omitempty"`
	TaskID                        *string `json:"task_guid,omitempty"                          yaml:"task_guid,omitempty"`
	TaskName                      *string `json:"task_name,omitempty"                          yaml:"task_name,omitempty"`
}

// ApplicationUsageEventResource is an app usage event with its metadata.
type ApplicationUsageEventResource = Resource[ApplicationUsageEventEntity]

// GetApplicationUsageEventRequest is the request for GET /v2/app_usage_events/{id}.
type GetApplicationUsageEventRequest struct {
	ApplicationUsageEventID string `json:"-" url:"-" label:"application usage event id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetApplicationUsageEventRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetApplicationUsageEventResponse is a single app usage event.
type GetApplicationUsageEventResponse = ApplicationUsageEventResource

// ListApplicationUsageEventsRequest is the request for GET /v2/app_usage_events.
type ListApplicationUsageEventsRequest struct {
	PaginatedRequest

	// AfterApplicationUsageEventID restricts the list to events after the
	// given event.
	AfterApplicationUsageEventID string `json:"-" url:"after_guid,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r ListApplicationUsageEventsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListApplicationUsageEventsResponse is a page of app usage events.
type ListApplicationUsageEventsResponse = PaginatedResponse[ApplicationUsageEventResource]

// PurgeAndReseedApplicationUsageEventsRequest is the request for
// POST /v2/app_usage_events/destructively_purge_all_and_reseed_started_apps.
type PurgeAndReseedApplicationUsageEventsRequest struct{}

// Validate implements cfapi.Validatable.
func (r PurgeAndReseedApplicationUsageEventsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidationResult{}
}

// ApplicationUsageEvents is the v2 app usage events operation group.
type ApplicationUsageEvents interface {
	Get(ctx context.Context, request GetApplicationUsageEventRequest) *cfapi.Future[GetApplicationUsageEventResponse]
	List(ctx context.Context, request ListApplicationUsageEventsRequest) *cfapi.Future[ListApplicationUsageEventsResponse]
	// PurgeAndReseed destroys all existing events and creates one STARTED
	// event per running app.
	PurgeAndReseed(ctx context.Context, request PurgeAndReseedApplicationUsageEventsRequest) *cfapi.Future[cfapi.Empty]
}

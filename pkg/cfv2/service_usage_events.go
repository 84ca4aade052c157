package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// ServiceUsageEventEntity records a change in a service instance's billable
// state.
type ServiceUsageEventEntity struct {
	State               string `json:"state"                           yaml:"state"`
	OrganizationID      string `json:"org_guid"                        yaml:"org_guid"`
	SpaceID             string `json:"space_guid"                      yaml:"space_guid"`
	SpaceName           string `json:"space_name"                      yaml:"space_name"`
	ServiceInstanceID   string `json:"service_instance_guid"           yaml:"service_instance_guid"`
	ServiceInstanceName string `json:"service_instance_name"           yaml:"service_instance_name"`
	ServiceInstanceType string `json:"service_instance_type"           yaml:"service_instance_type"`
	ServicePlanID       string `json:"service_plan_guid,omitempty"     yaml:"service_plan_guid,omitempty"`
	ServicePlanName     string `json:"service_plan_name,omitempty"     yaml:"service_plan_name,omitempty"`
	ServiceID           string `json:"service_guid,omitempty"          yaml:"service_guid,omitempty"`
	ServiceLabel        string `json:"service_label,omitempty"         yaml:"service_label,omitempty"`
	ServiceBrokerName   string `json:"service_broker_name,omitempty"   yaml:"service_broker_name,omitempty"`
	ServiceBrokerID     string `json:"service_broker_guid,omitempty"   yaml:"service_broker_guid,omitempty"`
}

// ServiceUsageEventResource is a service usage event with its metadata.
type ServiceUsageEventResource = Resource[ServiceUsageEventEntity]

// GetServiceUsageEventRequest is the request for GET /v2/service_usage_events/{id}.
type GetServiceUsageEventRequest struct {
	ServiceUsageEventID string `json:"-" url:"-" label:"service usage event id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetServiceUsageEventRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetServiceUsageEventResponse is a single service usage event.
type GetServiceUsageEventResponse = ServiceUsageEventResource

// ListServiceUsageEventsRequest is the request for GET /v2/service_usage_events.
type ListServiceUsageEventsRequest struct {
	PaginatedRequest

	AfterServiceUsageEventID string          `json:"-" url:"after_guid,omitempty"`
	ServiceInstanceTypes     FilterParameter `json:"-" url:"service_instance_type,omitempty"`
	ServiceIDs               FilterParameter `json:"-" url:"service_guid,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r ListServiceUsageEventsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListServiceUsageEventsResponse is a page of service usage events.
type ListServiceUsageEventsResponse = PaginatedResponse[ServiceUsageEventResource]

// PurgeAndReseedServiceUsageEventsRequest is the request for
// POST /v2/service_usage_events/destructively_purge_all_and_reseed_existing_instances.
type PurgeAndReseedServiceUsageEventsRequest struct{}

// Validate implements cfapi.Validatable.
func (r PurgeAndReseedServiceUsageEventsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidationResult{}
}

// ServiceUsageEvents is the v2 service usage events operation group.
type ServiceUsageEvents interface {
	Get(ctx context.Context, request GetServiceUsageEventRequest) *cfapi.Future[GetServiceUsageEventResponse]
	List(ctx context.Context, request ListServiceUsageEventsRequest) *cfapi.Future[ListServiceUsageEventsResponse]
	PurgeAndReseed(ctx context.Context, request PurgeAndReseedServiceUsageEventsRequest) *cfapi.Future[cfapi.Empty]
}

package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// ServiceUsageEventsClient implements cfv2.ServiceUsageEvents.
type ServiceUsageEventsClient struct {
	events *UsageEventsClient[cfv2.ServiceUsageEventEntity]
}

// NewServiceUsageEventsClient creates a new service usage events client.
func NewServiceUsageEventsClient(executor *rest.Executor) *ServiceUsageEventsClient {
	return &ServiceUsageEventsClient{
		events: NewUsageEventsClient[cfv2.ServiceUsageEventEntity](executor, "service_usage_events", "destructively_purge_all_and_reseed_existing_instances"),
	}
}

// Get implements cfv2.ServiceUsageEvents.Get.
func (c *ServiceUsageEventsClient) Get(ctx context.Context, request cfv2.GetServiceUsageEventRequest) *cfapi.Future[cfv2.GetServiceUsageEventResponse] {
	return c.events.get(ctx, request, request.ServiceUsageEventID)
}

// List implements cfv2.ServiceUsageEvents.List.
func (c *ServiceUsageEventsClient) List(ctx context.Context, request cfv2.ListServiceUsageEventsRequest) *cfapi.Future[cfv2.ListServiceUsageEventsResponse] {
	return c.events.list(ctx, request)
}

// PurgeAndReseed implements cfv2.ServiceUsageEvents.PurgeAndReseed.
func (c *ServiceUsageEventsClient) PurgeAndReseed(ctx context.Context, request cfv2.PurgeAndReseedServiceUsageEventsRequest) *cfapi.Future[cfapi.Empty] {
	return c.events.purgeAndReseed(ctx, request)
}

package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// ApplicationUsageEventsClient implements cfv2.ApplicationUsageEvents.
type ApplicationUsageEventsClient struct {
	events *UsageEventsClient[cfv2.ApplicationUsageEventEntity]
}

// NewApplicationUsageEventsClient creates a new app usage events client.
func NewApplicationUsageEventsClient(executor *rest.Executor) *ApplicationUsageEventsClient {
	return &ApplicationUsageEventsClient{
		events: NewUsageEventsClient[cfv2.ApplicationUsageEventEntity](executor, "app_usage_events", "destructively_purge_all_and_reseed_started_apps"),
	}
}

// Get implements cfv2.ApplicationUsageEvents.Get.
func (c *ApplicationUsageEventsClient) Get(ctx context.Context, request cfv2.GetApplicationUsageEventRequest) *cfapi.Future[cfv2.GetApplicationUsageEventResponse] {
	return c.events.get(ctx, request, request.ApplicationUsageEventID)
}

// List implements cfv2.ApplicationUsageEvents.List.
func (c *ApplicationUsageEventsClient) List(ctx context.Context, request cfv2.ListApplicationUsageEventsRequest) *cfapi.Future[cfv2.ListApplicationUsageEventsResponse] {
	return c.events.list(ctx, request)
}

// PurgeAndReseed implements cfv2.ApplicationUsageEvents.PurgeAndReseed.
func (c *ApplicationUsageEventsClient) PurgeAndReseed(ctx context.Context, request cfv2.PurgeAndReseedApplicationUsageEventsRequest) *cfapi.Future[cfapi.Empty] {
	return c.events.purgeAndReseed(ctx, request)
}

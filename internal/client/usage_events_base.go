package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// UsageEventEntity is the entity of a v2 usage event.
type UsageEventEntity interface {
	cfv2.ApplicationUsageEventEntity | cfv2.ServiceUsageEventEntity
}

// UsageEventsClient provides the operations shared by the v2 usage event
// endpoints.
type UsageEventsClient[E UsageEventEntity] struct {
	executor     *rest.Executor
	resourcePath string
	purgeAction  string
}

// NewUsageEventsClient creates a usage events client for resourcePath, for
// example app_usage_events.
func NewUsageEventsClient[E UsageEventEntity](executor *rest.Executor, resourcePath, purgeAction string) *UsageEventsClient[E] {
	return &UsageEventsClient[E]{
		executor:     executor,
		resourcePath: resourcePath,
		purgeAction:  purgeAction,
	}
}

func (c *UsageEventsClient[E]) get(ctx context.Context, request any, eventID string) *cfapi.Future[cfv2.Resource[E]] {
	return rest.Get[cfv2.Resource[E]](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", c.resourcePath, eventID)
	})
}

func (c *UsageEventsClient[E]) list(ctx context.Context, request any) *cfapi.Future[cfv2.PaginatedResponse[cfv2.Resource[E]]] {
	return rest.Get[cfv2.PaginatedResponse[cfv2.Resource[E]]](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", c.resourcePath)
		builder.Augment(request)
	})
}

func (c *UsageEventsClient[E]) purgeAndReseed(ctx context.Context, request any) *cfapi.Future[cfapi.Empty] {
	return rest.Post[cfapi.Empty](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", c.resourcePath, c.purgeAction)
	})
}

package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// SpacesClient implements cfv2.Spaces.
type SpacesClient struct {
	executor *rest.Executor
}

// NewSpacesClient creates a new spaces client.
func NewSpacesClient(executor *rest.Executor) *SpacesClient {
	return &SpacesClient{executor: executor}
}

// Create implements cfv2.Spaces.Create.
func (c *SpacesClient) Create(ctx context.Context, request cfv2.CreateSpaceRequest) *cfapi.Future[cfv2.CreateSpaceResponse] {
	return rest.Post[cfv2.CreateSpaceResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "spaces")
	})
}

// Get implements cfv2.Spaces.Get.
func (c *SpacesClient) Get(ctx context.Context, request cfv2.GetSpaceRequest) *cfapi.Future[cfv2.GetSpaceResponse] {
	return rest.Get[cfv2.GetSpaceResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "spaces", request.SpaceID)
	})
}

// List implements cfv2.Spaces.List.
func (c *SpacesClient) List(ctx context.Context, request cfv2.ListSpacesRequest) *cfapi.Future[cfv2.ListSpacesResponse] {
	return rest.Get[cfv2.ListSpacesResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "spaces")
		builder.Augment(request)
	})
}

// Delete implements cfv2.Spaces.Delete.
func (c *SpacesClient) Delete(ctx context.Context, request cfv2.DeleteSpaceRequest) *cfapi.Future[cfv2.DeleteSpaceResponse] {
	return rest.Delete[cfv2.DeleteSpaceResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "spaces", request.SpaceID)
		builder.Augment(request)
	})
}

package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// ApplicationsClient implements cfv2.ApplicationsV2.
type ApplicationsClient struct {
	executor *rest.Executor
}

// NewApplicationsClient creates a new apps client.
func NewApplicationsClient(executor *rest.Executor) *ApplicationsClient {
	return &ApplicationsClient{executor: executor}
}

// Create implements cfv2.ApplicationsV2.Create.
func (c *ApplicationsClient) Create(ctx context.Context, request cfv2.CreateApplicationRequest) *cfapi.Future[cfv2.CreateApplicationResponse] {
	return rest.Post[cfv2.CreateApplicationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "apps")
	})
}

// Get implements cfv2.ApplicationsV2.Get.
func (c *ApplicationsClient) Get(ctx context.Context, request cfv2.GetApplicationRequest) *cfapi.Future[cfv2.GetApplicationResponse] {
	return rest.Get[cfv2.GetApplicationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "apps", request.ApplicationID)
	})
}

// List implements cfv2.ApplicationsV2.List.
func (c *ApplicationsClient) List(ctx context.Context, request cfv2.ListApplicationsRequest) *cfapi.Future[cfv2.ListApplicationsResponse] {
	return rest.Get[cfv2.ListApplicationsResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "apps")
		builder.Augment(request)
	})
}

// Update implements cfv2.ApplicationsV2.Update.
func (c *ApplicationsClient) Update(ctx context.Context, request cfv2.UpdateApplicationRequest) *cfapi.Future[cfv2.UpdateApplicationResponse] {
	return rest.Put[cfv2.UpdateApplicationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "apps", request.ApplicationID)
	})
}

// Delete implements cfv2.ApplicationsV2.Delete.
func (c *ApplicationsClient) Delete(ctx context.Context, request cfv2.DeleteApplicationRequest) *cfapi.Future[cfapi.Empty] {
	return rest.Delete[cfapi.Empty](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "apps", request.ApplicationID)
		builder.Augment(request)
	})
}

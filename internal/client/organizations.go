package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// OrganizationsClient implements cfv2.Organizations.
type OrganizationsClient struct {
	executor *rest.Executor
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(executor *rest.Executor) *OrganizationsClient {
	return &OrganizationsClient{executor: executor}
}

// Create implements cfv2.Organizations.Create.
func (c *OrganizationsClient) Create(ctx context.Context, request cfv2.CreateOrganizationRequest) *cfapi.Future[cfv2.CreateOrganizationResponse] {
	return rest.Post[cfv2.CreateOrganizationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "organizations")
	})
}

// Get implements cfv2.Organizations.Get.
func (c *OrganizationsClient) Get(ctx context.Context, request cfv2.GetOrganizationRequest) *cfapi.Future[cfv2.GetOrganizationResponse] {
	return rest.Get[cfv2.GetOrganizationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "organizations", request.OrganizationID)
	})
}

// List implements cfv2.Organizations.List.
func (c *OrganizationsClient) List(ctx context.Context, request cfv2.ListOrganizationsRequest) *cfapi.Future[cfv2.ListOrganizationsResponse] {
	return rest.Get[cfv2.ListOrganizationsResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "organizations")
		builder.Augment(request)
	})
}

// Delete implements cfv2.Organizations.Delete. A synchronous delete
// completes with no value.
func (c *OrganizationsClient) Delete(ctx context.Context, request cfv2.DeleteOrganizationRequest) *cfapi.Future[cfv2.DeleteOrganizationResponse] {
	return rest.Delete[cfv2.DeleteOrganizationResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "organizations", request.OrganizationID)
		builder.Augment(request)
	})
}

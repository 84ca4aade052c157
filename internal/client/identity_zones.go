package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
)

// IdentityZonesClient implements uaa.IdentityZones.
type IdentityZonesClient struct {
	executor *rest.Executor
}

// NewIdentityZonesClient creates a new identity zones client.
func NewIdentityZonesClient(executor *rest.Executor) *IdentityZonesClient {
	return &IdentityZonesClient{executor: executor}
}

// Create implements uaa.IdentityZones.Create.
func (c *IdentityZonesClient) Create(ctx context.Context, request uaa.CreateIdentityZoneRequest) *cfapi.Future[uaa.CreateIdentityZoneResponse] {
	return rest.Post[uaa.CreateIdentityZoneResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("identity-zones")
	})
}

// Get implements uaa.IdentityZones.Get.
func (c *IdentityZonesClient) Get(ctx context.Context, request uaa.GetIdentityZoneRequest) *cfapi.Future[uaa.GetIdentityZoneResponse] {
	return rest.Get[uaa.GetIdentityZoneResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("identity-zones", request.IdentityZoneID)
	})
}

// List implements uaa.IdentityZones.List.
func (c *IdentityZonesClient) List(ctx context.Context, request uaa.ListIdentityZonesRequest) *cfapi.Future[uaa.ListIdentityZonesResponse] {
	return rest.Get[uaa.ListIdentityZonesResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("identity-zones")
	})
}

// Update implements uaa.IdentityZones.Update.
func (c *IdentityZonesClient) Update(ctx context.Context, request uaa.UpdateIdentityZoneRequest) *cfapi.Future[uaa.UpdateIdentityZoneResponse] {
	return rest.Put[uaa.UpdateIdentityZoneResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("identity-zones", request.IdentityZoneID)
	})
}

// Delete implements uaa.IdentityZones.Delete.
func (c *IdentityZonesClient) Delete(ctx context.Context, request uaa.DeleteIdentityZoneRequest) *cfapi.Future[uaa.DeleteIdentityZoneResponse] {
	return rest.Delete[uaa.DeleteIdentityZoneResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("identity-zones", request.IdentityZoneID)
	})
}

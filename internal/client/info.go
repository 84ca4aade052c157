package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// InfoClient implements cfv2.Info.
type InfoClient struct {
	executor *rest.Executor
}

// NewInfoClient creates a new info client.
func NewInfoClient(executor *rest.Executor) *InfoClient {
	return &InfoClient{executor: executor}
}

// Get implements cfv2.Info.Get.
func (c *InfoClient) Get(ctx context.Context, request cfv2.GetInfoRequest) *cfapi.Future[cfv2.GetInfoResponse] {
	return rest.Get[cfv2.GetInfoResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "info")
	})
}

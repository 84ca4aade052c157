package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// BlobstoresClient implements cfv2.Blobstores.
type BlobstoresClient struct {
	executor *rest.Executor
}

// NewBlobstoresClient creates a new blobstores client.
func NewBlobstoresClient(executor *rest.Executor) *BlobstoresClient {
	return &BlobstoresClient{executor: executor}
}

// DeleteBuildpackCaches implements cfv2.Blobstores.DeleteBuildpackCaches.
func (c *BlobstoresClient) DeleteBuildpackCaches(ctx context.Context, request cfv2.DeleteBlobstoreBuildpackCachesRequest) *cfapi.Future[cfv2.DeleteBlobstoreBuildpackCachesResponse] {
	return rest.Delete[cfv2.DeleteBlobstoreBuildpackCachesResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "blobstores", "buildpack_cache")
		builder.Augment(request)
	})
}

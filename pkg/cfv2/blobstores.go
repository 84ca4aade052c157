package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// DeleteBlobstoreBuildpackCachesRequest is the request for
// DELETE /v2/blobstores/buildpack_cache.
type DeleteBlobstoreBuildpackCachesRequest struct {
	Async *bool `json:"-" url:"async,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r DeleteBlobstoreBuildpackCachesRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// DeleteBlobstoreBuildpackCachesResponse is the job deleting the caches.
type DeleteBlobstoreBuildpackCachesResponse = JobResource

// Blobstores is the v2 blobstores operation group.
type Blobstores interface {
	DeleteBuildpackCaches(ctx context.Context, request DeleteBlobstoreBuildpackCachesRequest) *cfapi.Future[DeleteBlobstoreBuildpackCachesResponse]
}

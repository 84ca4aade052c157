package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// JobsClient implements cfv2.Jobs.
type JobsClient struct {
	executor     *rest.Executor
	pollInterval time.Duration
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(executor *rest.Executor) *JobsClient {
	return &JobsClient{
		executor:     executor,
		pollInterval: constants.DefaultPollInterval,
	}
}

// Get implements cfv2.Jobs.Get.
func (c *JobsClient) Get(ctx context.Context, request cfv2.GetJobRequest) *cfapi.Future[cfv2.GetJobResponse] {
	return rest.Get[cfv2.GetJobResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("v2", "jobs", request.JobID)
	})
}

// WaitForCompletion implements cfv2.Jobs.WaitForCompletion. The polling loop
// runs on its own goroutine and never holds a scheduler slot.
func (c *JobsClient) WaitForCompletion(ctx context.Context, jobID string, timeout time.Duration) *cfapi.Future[cfapi.Empty] {
	err := cfv2.GetJobRequest{JobID: jobID}.Validate().Err()
	if err != nil {
		return cfapi.Failed[cfapi.Empty](err)
	}

	if timeout <= 0 {
		timeout = constants.DefaultJobPollTimeout
	}

	return cfapi.NewFuture(ctx, cfapi.GoroutineScheduler{}, func(ctx context.Context) (*cfapi.Empty, error) {
		return nil, c.pollUntilComplete(ctx, jobID, timeout)
	})
}

func (c *JobsClient) pollUntilComplete(ctx context.Context, jobID string, timeout time.Duration) error {
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		job, err := c.Get(pollCtx, cfv2.GetJobRequest{JobID: jobID}).Await(pollCtx)

		switch {
		case err == nil && job != nil && job.Entity.Terminal():
			return jobResult(job.Entity)
		case err != nil && pollCtx.Err() == nil:
			return fmt.Errorf("getting job status: %w", err)
		}

		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return fmt.Errorf("%w %s after %s", cfapi.ErrJobTimeout, jobID, timeout)
		case <-ticker.C:
		}
	}
}

// jobErrorStatus gives the HTTP status the Cloud Controller answers with for
// the error codes a job can fail with that callers commonly test for.
var jobErrorStatus = map[string]int{
	"CF-InvalidAuthToken": http.StatusUnauthorized,
	"CF-NotAuthenticated": http.StatusUnauthorized,
	"CF-NotAuthorized":    http.StatusForbidden,
}

// jobResult maps a terminal job to nil or to the error it failed with. A job
// carries no HTTP status, so StatusCode is set only for the error codes in
// jobErrorStatus and stays 0 otherwise.
func jobResult(job cfv2.JobEntity) error {
	if job.Status != cfv2.JobStatusFailed {
		return nil
	}

	if job.ErrorDetails == nil {
		return fmt.Errorf("%w: %s", cfapi.ErrJobFailed, job.Error)
	}

	return fmt.Errorf("%w: %w", cfapi.ErrJobFailed, &cfapi.APIError{
		StatusCode:  jobErrorStatus[job.ErrorDetails.ErrorCode],
		Code:        job.ErrorDetails.Code,
		ErrorCode:   job.ErrorDetails.ErrorCode,
		Description: job.ErrorDetails.Description,
	})
}

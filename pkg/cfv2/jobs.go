package cfv2

import (
	"context"
	"time"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// Job statuses.
const (
	JobStatusQueued   = "queued"
	JobStatusRunning  = "running"
	JobStatusFinished = "finished"
	JobStatusFailed   = "failed"
)

// JobErrorDetails describes why a job failed.
type JobErrorDetails struct {
	Code        int    `json:"code"        yaml:"code"`
	Description string `json:"description" yaml:"description"`
	ErrorCode   string `json:"error_code"  yaml:"error_code"`
}

// JobEntity is a v2 background job.
type JobEntity struct {
	ID           string           `json:"guid"                    yaml:"guid"`
	Status       string           `json:"status"                  yaml:"status"`
	Error        string           `json:"error,omitempty"         yaml:"error,omitempty"`
	ErrorDetails *JobErrorDetails `json:"error_details,omitempty" yaml:"error_details,omitempty"`
}

// JobResource is a job with its metadata.
type JobResource = Resource[JobEntity]

// Terminal reports whether the job has finished or failed.
func (e JobEntity) Terminal() bool {
	return e.Status == JobStatusFinished || e.Status == JobStatusFailed
}

// GetJobRequest is the request for GET /v2/jobs/{id}.
type GetJobRequest struct {
	JobID string `json:"-" url:"-" label:"job id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetJobRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetJobResponse is a single job.
type GetJobResponse = JobResource

// Jobs is the v2 jobs operation group.
type Jobs interface {
	Get(ctx context.Context, request GetJobRequest) *cfapi.Future[GetJobResponse]
	// WaitForCompletion polls the job until it finishes. A failed job
	// completes the future with a *cfapi.APIError built from its error
	// details; exceeding timeout completes it with cfapi.ErrJobTimeout.
	WaitForCompletion(ctx context.Context, jobID string, timeout time.Duration) *cfapi.Future[cfapi.Empty]
}

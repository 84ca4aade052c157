package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	cfhttp "github.com/fivetwenty-io/cfv2-client/internal/http"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// Doer performs a single HTTP exchange.
type Doer interface {
	Do(ctx context.Context, req *cfhttp.Request) (*cfhttp.Response, error)
}

// Executor runs operations against one API root on a scheduler.
type Executor struct {
	doer      Doer
	scheduler cfapi.Scheduler
}

// NewExecutor creates an executor. A nil scheduler runs each operation on its
// own goroutine.
func NewExecutor(doer Doer, scheduler cfapi.Scheduler) *Executor {
	if scheduler == nil {
		scheduler = cfapi.GoroutineScheduler{}
	}

	return &Executor{
		doer:      doer,
		scheduler: scheduler,
	}
}

// Scheduler returns the scheduler operations run on.
func (e *Executor) Scheduler() cfapi.Scheduler {
	return e.scheduler
}

// Execute validates request, builds the URI with mutate and performs the
// exchange on the executor's scheduler. POST and PUT send request as the JSON
// body. The future completes with no value when R is cfapi.Empty or the
// response body is empty.
func Execute[R any](ctx context.Context, e *Executor, method string, request any, mutate func(*URIBuilder)) *cfapi.Future[R] {
	if validatable, ok := request.(cfapi.Validatable); ok {
		err := validatable.Validate().Err()
		if err != nil {
			return cfapi.Failed[R](err)
		}
	}

	builder := NewURIBuilder()
	if mutate != nil {
		mutate(builder)
	}

	err := builder.Err()
	if err != nil {
		return cfapi.Failed[R](err)
	}

	httpReq := &cfhttp.Request{
		Method:   method,
		Path:     builder.Path(),
		RawQuery: builder.RawQuery(),
	}

	if method == http.MethodPost || method == http.MethodPut {
		httpReq.Body = request
	}

	if provider, ok := request.(cfapi.HeaderProvider); ok {
		httpReq.Headers = provider.Headers()
	}

	return cfapi.NewFuture(ctx, e.scheduler, func(ctx context.Context) (*R, error) {
		resp, err := e.doer.Do(ctx, httpReq)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if err != nil {
			return nil, err
		}

		return decode[R](resp.Body)
	})
}

// Get executes a GET operation.
func Get[R any](ctx context.Context, e *Executor, request any, mutate func(*URIBuilder)) *cfapi.Future[R] {
	return Execute[R](ctx, e, http.MethodGet, request, mutate)
}

// Post executes a POST operation.
func Post[R any](ctx context.Context, e *Executor, request any, mutate func(*URIBuilder)) *cfapi.Future[R] {
	return Execute[R](ctx, e, http.MethodPost, request, mutate)
}

// Put executes a PUT operation.
func Put[R any](ctx context.Context, e *Executor, request any, mutate func(*URIBuilder)) *cfapi.Future[R] {
	return Execute[R](ctx, e, http.MethodPut, request, mutate)
}

// Delete executes a DELETE operation.
func Delete[R any](ctx context.Context, e *Executor, request any, mutate func(*URIBuilder)) *cfapi.Future[R] {
	return Execute[R](ctx, e, http.MethodDelete, request, mutate)
}

var emptyType = reflect.TypeOf(cfapi.Empty{})

func decode[R any](body []byte) (*R, error) {
	if reflect.TypeOf((*R)(nil)).Elem() == emptyType || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	result := new(R)

	err := json.Unmarshal(body, result)
	if err != nil {
		return nil, &cfapi.DecodeError{
			Type: fmt.Sprintf("%T", *result),
			Body: body,
			Err:  err,
		}
	}

	return result, nil
}

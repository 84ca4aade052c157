package cfapi

import (
	"context"
	"sync"
	"time"
)

// Empty is the response type of operations whose success carries no value.
type Empty struct{}

// Future is the single-value completion handle returned by every operation.
// It completes exactly once with a value, with no value (empty success), or
// with an error.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu          sync.Mutex
	value       *T
	err         error
	completed   bool
	canceled    bool
	subscribers []func(*T, error)
}

// NewFuture schedules task and returns a handle on its result. The task
// context is canceled by Cancel.
func NewFuture[T any](ctx context.Context, scheduler Scheduler, task func(ctx context.Context) (*T, error)) *Future[T] {
	if scheduler == nil {
		scheduler = GoroutineScheduler{}
	}

	runCtx, cancel := context.WithCancel(ctx)
	future := &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	scheduler.Schedule(runCtx, func() {
		value, err := task(runCtx)
		future.complete(value, err)
	})

	return future
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	future := &Future[T]{
		done:   make(chan struct{}),
		cancel: func() {},
	}
	future.complete(nil, err)

	return future
}

// Completed returns a future already completed with value.
func Completed[T any](value *T) *Future[T] {
	future := &Future[T]{
		done:   make(chan struct{}),
		cancel: func() {},
	}
	future.complete(value, nil)

	return future
}

func (f *Future[T]) complete(value *T, err error) {
	f.mu.Lock()
	if f.completed || f.canceled {
		f.mu.Unlock()

		return
	}

	f.value = value
	f.err = err
	f.completed = true
	subscribers := f.subscribers
	f.subscribers = nil
	close(f.done)
	f.mu.Unlock()

	f.cancel()

	for _, subscriber := range subscribers {
		subscriber(value, err)
	}
}

// Subscribe registers fn to receive the result. fn runs on the goroutine that
// completes the future, or immediately if it has already completed. A
// canceled future never calls fn.
func (f *Future[T]) Subscribe(fn func(value *T, err error)) {
	f.mu.Lock()

	switch {
	case f.canceled:
		f.mu.Unlock()
	case f.completed:
		value, err := f.value, f.err
		f.mu.Unlock()
		fn(value, err)
	default:
		f.subscribers = append(f.subscribers, fn)
		f.mu.Unlock()
	}
}

// Await blocks until the future completes or ctx ends. A nil value with a nil
// error is an empty success. Ending ctx does not cancel the operation.
func (f *Future[T]) Await(ctx context.Context) (*T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()

		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AwaitTimeout is Await bounded by timeout.
func (f *Future[T]) AwaitTimeout(timeout time.Duration) (*T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return f.Await(ctx)
}

// Cancel aborts the operation if it has not completed. Pending subscribers are
// dropped and Await returns ErrCanceled.
func (f *Future[T]) Cancel() {
	f.mu.Lock()
	if f.completed || f.canceled {
		f.mu.Unlock()

		return
	}

	f.canceled = true
	f.err = ErrCanceled
	f.subscribers = nil
	close(f.done)
	f.mu.Unlock()

	f.cancel()
}

// Done is closed when the future completes or is canceled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Then chains fn after f. Canceling the returned future cancels f as well.
func Then[T, U any](ctx context.Context, f *Future[T], fn func(ctx context.Context, value *T) (*U, error)) *Future[U] {
	return NewFuture(ctx, nil, func(ctx context.Context) (*U, error) {
		value, err := f.Await(ctx)
		if err != nil {
			if ctx.Err() != nil {
				f.Cancel()
			}

			return nil, err
		}

		return fn(ctx, value)
	})
}

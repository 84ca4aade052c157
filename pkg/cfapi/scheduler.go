package cfapi

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Scheduler is the execution context operations run on. Schedule must not
// block the caller.
type Scheduler interface {
	Schedule(ctx context.Context, task func())
}

// GoroutineScheduler runs every task on its own goroutine.
type GoroutineScheduler struct{}

// Schedule implements Scheduler.
func (GoroutineScheduler) Schedule(_ context.Context, task func()) {
	go task()
}

// BoundedScheduler runs at most a fixed number of tasks at once. Tasks waiting
// for a slot give up when their context ends and then run immediately, so
// they observe the cancellation instead of performing I/O.
type BoundedScheduler struct {
	slots *semaphore.Weighted
}

// NewBoundedScheduler creates a scheduler with the given number of slots.
func NewBoundedScheduler(limit int64) *BoundedScheduler {
	if limit < 1 {
		limit = 1
	}

	return &BoundedScheduler{slots: semaphore.NewWeighted(limit)}
}

// Schedule implements Scheduler.
func (s *BoundedScheduler) Schedule(ctx context.Context, task func()) {
	go func() {
		err := s.slots.Acquire(ctx, 1)
		if err != nil {
			task()

			return
		}
		defer s.slots.Release(1)

		task()
	}()
}

// Package collector drains Cloud Foundry v2 usage events into a sink,
// remembering how far it got in a cursor store so a restart resumes where the
// previous run stopped.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoSources is returned by Run when no source is configured.
var ErrNoSources = errors.New("collector has no sources")

// Options tunes the collection loop. Zero values take the defaults.
type Options struct {
	// Interval is the wait after a round that returned less than a full
	// batch.
	Interval time.Duration
	// MinWait is the wait after a full batch.
	MinWait time.Duration
	// BatchSize is the number of events requested per round, at most 100.
	BatchSize int
	// MaxRetries bounds the retries of a failed round before it is counted
	// as an error.
	MaxRetries uint64
	// RetryInitialInterval is the first backoff delay.
	RetryInitialInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = constants.DefaultCollectorInterval
	}

	if o.MinWait <= 0 {
		o.MinWait = 3 * time.Second
	}

	if o.BatchSize <= 0 {
		o.BatchSize = constants.DefaultCollectorBatchSize
	}

	o.BatchSize = min(o.BatchSize, constants.MaxPageSize)

	if o.MaxRetries == 0 {
		o.MaxRetries = 5
	}

	if o.RetryInitialInterval <= 0 {
		o.RetryInitialInterval = time.Second
	}

	return o
}

// Collector moves events from its sources to its sink.
type Collector struct {
	sources []Source
	cursors CursorStore
	sink    Sink
	filter  *Filter
	metrics *Metrics
	logger  zerolog.Logger
	options Options

	mu         sync.Mutex
	lastErrors map[Kind]error
}

// New creates a collector. filter and metrics may be nil.
func New(sources []Source, cursors CursorStore, sink Sink, filter *Filter, metrics *Metrics, logger zerolog.Logger, options Options) *Collector {
	return &Collector{
		sources:    sources,
		cursors:    cursors,
		sink:       sink,
		filter:     filter,
		metrics:    metrics,
		logger:     logger,
		options:    options.withDefaults(),
		lastErrors: make(map[Kind]error),
	}
}

// Run collects from every source until ctx is done.
func (c *Collector) Run(ctx context.Context) error {
	if len(c.sources) == 0 {
		return ErrNoSources
	}

	c.logger.Info().
		Dur("interval", c.options.Interval).
		Int("batch_size", c.options.BatchSize).
		Str("filter", c.filter.String()).
		Msg("collector started")

	group, groupCtx := errgroup.WithContext(ctx)

	for _, source := range c.sources {
		source := source
		group.Go(func() error {
			c.runSource(groupCtx, source)

			return nil
		})
	}

	err := group.Wait()

	c.logger.Info().Msg("collector stopped")

	return err
}

func (c *Collector) runSource(ctx context.Context, source Source) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		timer.Reset(c.nextWait(ctx, source))
	}
}

// nextWait runs one round with retries and returns the wait before the next.
func (c *Collector) nextWait(ctx context.Context, source Source) time.Duration {
	kind := source.Kind()

	var read int

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.options.RetryInitialInterval
	policy.MaxElapsedTime = 0

	err := backoff.RetryNotify(func() error {
		var err error

		read, err = c.CollectOnce(ctx, source)

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, c.options.MaxRetries), ctx), func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("kind", string(kind)).Dur("retry_in", wait).Msg("collection round failed")
	})

	c.setLastError(kind, err)

	if err != nil {
		if ctx.Err() == nil {
			c.metrics.observeError(kind)
			c.logger.Error().Err(err).Str("kind", string(kind)).Msg("collection round failed after retries")
		}

		return c.options.Interval
	}

	if read == c.options.BatchSize {
		return c.options.MinWait
	}

	return c.options.Interval
}

// CollectOnce runs a single round for source and returns the number of
// settled events read. The cursor only advances once the sink accepted the
// events, and it advances past filtered events too.
func (c *Collector) CollectOnce(ctx context.Context, source Source) (int, error) {
	kind := source.Kind()

	afterGUID, err := c.cursors.LastGUID(ctx, kind)
	if err != nil {
		return 0, err
	}

	events, err := source.Fetch(ctx, afterGUID, c.options.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("fetching %s usage events: %w", kind, err)
	}

	if len(events) == 0 {
		c.metrics.observeRound(kind, 0, 0, time.Now())

		return 0, nil
	}

	kept, err := c.filter.Apply(kind, events)
	if err != nil {
		return 0, backoff.Permanent(err)
	}

	if len(kept) > 0 {
		err = c.sink.Store(ctx, kind, kept)
		if err != nil {
			return 0, fmt.Errorf("storing %s usage events: %w", kind, err)
		}
	}

	last := events[len(events)-1].GUID

	err = c.cursors.SaveGUID(ctx, kind, last)
	if err != nil {
		return 0, err
	}

	c.metrics.observeRound(kind, len(kept), len(events)-len(kept), time.Now())

	c.logger.Info().
		Str("kind", string(kind)).
		Str("after_guid", afterGUID).
		Str("last_guid", last).
		Int("read", len(events)).
		Int("stored", len(kept)).
		Msg("collected usage events")

	return len(events), nil
}

func (c *Collector) setLastError(kind Kind, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErrors[kind] = err
}

// Healthy returns the errors of sources whose last round failed.
func (c *Collector) Healthy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	for kind, err := range c.lastErrors {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
	}

	return errors.Join(errs...)
}

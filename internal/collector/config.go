package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Backend names accepted in CursorConfig.Type and SinkConfig.Type.
const (
	BackendMemory   = "memory"
	BackendLog      = "log"
	BackendNATS     = "nats"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const (
	defaultStream         = "CF_USAGE_EVENTS"
	defaultRedisKeyPrefix = "cfv2:collector:cursor"
)

// Config is the collector section of the CLI configuration.
type Config struct {
	Kinds      []string      `mapstructure:"kinds"       yaml:"kinds"`
	Interval   time.Duration `mapstructure:"interval"    yaml:"interval"`
	MinWait    time.Duration `mapstructure:"min_wait"    yaml:"min_wait"`
	MinAge     time.Duration `mapstructure:"min_age"     yaml:"min_age"`
	BatchSize  int           `mapstructure:"batch_size"  yaml:"batch_size"`
	MaxRetries uint64        `mapstructure:"max_retries" yaml:"max_retries"`
	Filter     string        `mapstructure:"filter"      yaml:"filter"`
	ListenAddr string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	Cursor     CursorConfig  `mapstructure:"cursor"      yaml:"cursor"`
	Sink       SinkConfig    `mapstructure:"sink"        yaml:"sink"`
}

// CursorConfig selects the cursor store.
type CursorConfig struct {
	Type      string `mapstructure:"type"       yaml:"type"`
	URL       string `mapstructure:"url"        yaml:"url"`
	Bucket    string `mapstructure:"bucket"     yaml:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`
}

// SinkConfig selects the sink.
type SinkConfig struct {
	Type          string `mapstructure:"type"           yaml:"type"`
	URL           string `mapstructure:"url"            yaml:"url"`
	Stream        string `mapstructure:"stream"         yaml:"stream"`
	SubjectPrefix string `mapstructure:"subject_prefix" yaml:"subject_prefix"`
}

// DefaultConfig collects both kinds into the log with an in-memory cursor.
func DefaultConfig() Config {
	return Config{
		Kinds:      []string{string(KindApp), string(KindService)},
		Interval:   constants.DefaultCollectorInterval,
		MinAge:     constants.DefaultCollectorMinAge,
		BatchSize:  constants.DefaultCollectorBatchSize,
		ListenAddr: constants.DefaultCollectorListenAddr,
		Cursor:     CursorConfig{Type: BackendMemory},
		Sink:       SinkConfig{Type: BackendLog},
	}
}

// ParseKinds validates the configured kinds.
func (c Config) ParseKinds() ([]Kind, error) {
	kinds := make([]Kind, 0, len(c.Kinds))

	for _, name := range c.Kinds {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}

		kinds = append(kinds, kind)
	}

	return kinds, nil
}

// Options returns the loop settings.
func (c Config) Options() Options {
	return Options{
		Interval:   c.Interval,
		MinWait:    c.MinWait,
		BatchSize:  c.BatchSize,
		MaxRetries: c.MaxRetries,
	}
}

// Backends holds the connections opened for cursor stores and sinks, so a
// cursor store and a sink on the same server share one connection.
type Backends struct {
	mu    sync.Mutex
	nats  map[string]*nats.Conn
	pools map[string]*pgxpool.Pool
	redis map[string]*redis.Client
}

// NewBackends creates an empty connection set.
func NewBackends() *Backends {
	return &Backends{
		nats:  make(map[string]*nats.Conn),
		pools: make(map[string]*pgxpool.Pool),
		redis: make(map[string]*redis.Client),
	}
}

func (b *Backends) jetStream(url string) (jetstream.JetStream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if url == "" {
		url = nats.DefaultURL
	}

	conn, ok := b.nats[url]
	if !ok {
		var err error

		conn, err = nats.Connect(url, nats.Name("cfv2-collector"))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
		}

		b.nats[url] = conn
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	return js, nil
}

func (b *Backends) postgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pool, ok := b.pools[url]; ok {
		return pool, nil
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to Postgres: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()

		return nil, fmt.Errorf("pinging Postgres: %w", err)
	}

	b.pools[url] = pool

	return pool, nil
}

func (b *Backends) redisClient(ctx context.Context, url string) (*redis.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if client, ok := b.redis[url]; ok {
		return client, nil
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis URL: %w", err)
	}

	client := redis.NewClient(options)

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("pinging Redis: %w", err)
	}

	b.redis[url] = client

	return client, nil
}

// Close closes every opened connection.
func (b *Backends) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error

	for _, conn := range b.nats {
		errs = append(errs, conn.Drain())
	}

	for _, pool := range b.pools {
		pool.Close()
	}

	for _, client := range b.redis {
		errs = append(errs, client.Close())
	}

	return errors.Join(errs...)
}

// OpenCursorStore builds the configured cursor store.
func OpenCursorStore(ctx context.Context, cfg CursorConfig, backends *Backends) (CursorStore, error) {
	switch cfg.Type {
	case "", BackendMemory:
		return NewMemoryCursorStore(), nil
	case BackendNATS:
		js, err := backends.jetStream(cfg.URL)
		if err != nil {
			return nil, err
		}

		bucket := cfg.Bucket
		if bucket == "" {
			bucket = constants.DefaultCollectorBucket
		}

		return NewNATSCursorStore(ctx, js, bucket)
	case BackendRedis:
		client, err := backends.redisClient(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}

		prefix := cfg.KeyPrefix
		if prefix == "" {
			prefix = defaultRedisKeyPrefix
		}

		return NewRedisCursorStore(client, prefix), nil
	case BackendPostgres:
		pool, err := backends.postgres(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}

		return NewPostgresCursorStore(ctx, pool)
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownCursorStore, cfg.Type)
	}
}

// OpenSink builds the configured sink.
func OpenSink(ctx context.Context, cfg SinkConfig, kinds []Kind, backends *Backends, logger zerolog.Logger) (Sink, error) {
	switch cfg.Type {
	case "", BackendLog:
		return NewLogSink(logger), nil
	case BackendNATS:
		js, err := backends.jetStream(cfg.URL)
		if err != nil {
			return nil, err
		}

		stream := cfg.Stream
		if stream == "" {
			stream = defaultStream
		}

		prefix := cfg.SubjectPrefix
		if prefix == "" {
			prefix = constants.DefaultCollectorSubjectPrefix
		}

		return NewJetStreamSink(ctx, js, stream, prefix)
	case BackendPostgres:
		pool, err := backends.postgres(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}

		return NewPostgresSink(ctx, pool, kinds...)
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownSink, cfg.Type)
	}
}

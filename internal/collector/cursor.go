package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
)

// CursorStore remembers the GUID of the last event read per kind.
type CursorStore interface {
	// LastGUID returns "" when nothing was read yet.
	LastGUID(ctx context.Context, kind Kind) (string, error)
	SaveGUID(ctx context.Context, kind Kind, guid string) error
}

// MemoryCursorStore keeps cursors for the lifetime of the process.
type MemoryCursorStore struct {
	mu      sync.RWMutex
	cursors map[Kind]string
}

// NewMemoryCursorStore creates an empty store.
func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: make(map[Kind]string)}
}

func (s *MemoryCursorStore) LastGUID(_ context.Context, kind Kind) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cursors[kind], nil
}

func (s *MemoryCursorStore) SaveGUID(_ context.Context, kind Kind, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors[kind] = guid

	return nil
}

type keyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
}

// NATSCursorStore keeps cursors in a JetStream key-value bucket, one key per
// kind.
type NATSCursorStore struct {
	kv keyValue
}

// NewNATSCursorStore opens or creates bucket.
func NewNATSCursorStore(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSCursorStore, error) {
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Cloud Foundry usage event collector cursors",
	})
	if err != nil {
		return nil, fmt.Errorf("opening key-value bucket %s: %w", bucket, err)
	}

	return &NATSCursorStore{kv: kv}, nil
}

func (s *NATSCursorStore) LastGUID(ctx context.Context, kind Kind) (string, error) {
	entry, err := s.kv.Get(ctx, string(kind))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading %s cursor: %w", kind, err)
	}

	return string(entry.Value()), nil
}

func (s *NATSCursorStore) SaveGUID(ctx context.Context, kind Kind, guid string) error {
	_, err := s.kv.Put(ctx, string(kind), []byte(guid))
	if err != nil {
		return fmt.Errorf("saving %s cursor: %w", kind, err)
	}

	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCursorStore keeps cursors under <prefix>:<kind>.
type RedisCursorStore struct {
	client redisKV
	prefix string
}

// NewRedisCursorStore creates a store using client.
func NewRedisCursorStore(client redis.Cmdable, prefix string) *RedisCursorStore {
	return &RedisCursorStore{client: client, prefix: prefix}
}

func (s *RedisCursorStore) key(kind Kind) string {
	return s.prefix + ":" + string(kind)
}

func (s *RedisCursorStore) LastGUID(ctx context.Context, kind Kind) (string, error) {
	guid, err := s.client.Get(ctx, s.key(kind)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading %s cursor: %w", kind, err)
	}

	return guid, nil
}

func (s *RedisCursorStore) SaveGUID(ctx context.Context, kind Kind, guid string) error {
	err := s.client.Set(ctx, s.key(kind), guid, 0).Err()
	if err != nil {
		return fmt.Errorf("saving %s cursor: %w", kind, err)
	}

	return nil
}

// pgConn is the part of pgxpool.Pool the Postgres stores use.
type pgConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const cursorSchema = `CREATE TABLE IF NOT EXISTS usage_event_cursors (
	kind       text PRIMARY KEY,
	guid       text NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PostgresCursorStore keeps cursors in the usage_event_cursors table.
type PostgresCursorStore struct {
	db pgConn
}

// NewPostgresCursorStore creates the cursor table if needed.
func NewPostgresCursorStore(ctx context.Context, db pgConn) (*PostgresCursorStore, error) {
	_, err := db.Exec(ctx, cursorSchema)
	if err != nil {
		return nil, fmt.Errorf("creating cursor table: %w", err)
	}

	return &PostgresCursorStore{db: db}, nil
}

func (s *PostgresCursorStore) LastGUID(ctx context.Context, kind Kind) (string, error) {
	var guid string

	err := s.db.QueryRow(ctx, `SELECT guid FROM usage_event_cursors WHERE kind = $1`, string(kind)).Scan(&guid)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("reading %s cursor: %w", kind, err)
	}

	return guid, nil
}

func (s *PostgresCursorStore) SaveGUID(ctx context.Context, kind Kind, guid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO usage_event_cursors (kind, guid, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (kind) DO UPDATE
		  SET guid = EXCLUDED.guid,
		      updated_at = EXCLUDED.updated_at`,
		string(kind), guid,
	)
	if err != nil {
		return fmt.Errorf("saving %s cursor: %w", kind, err)
	}

	return nil
}

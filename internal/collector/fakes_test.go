package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
)

var errBackendDown = errors.New("backend down")

type kvEntry struct {
	jetstream.KeyValueEntry
	value []byte
}

func (e kvEntry) Value() []byte {
	return e.value
}

type fakeKeyValue struct {
	mu     sync.Mutex
	values map[string][]byte
	err    error
}

func newFakeKeyValue() *fakeKeyValue {
	return &fakeKeyValue{values: make(map[string][]byte)}
}

func (f *fakeKeyValue) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	value, ok := f.values[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return kvEntry{value: value}, nil
}

func (f *fakeKeyValue) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}

	f.values[key] = value

	return uint64(len(f.values)), nil
}

type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}

	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}

	f.values[key], _ = value.(string)

	return redis.NewStatusResult("OK", nil)
}

type execCall struct {
	sql  string
	args []any
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	if target, ok := dest[0].(*string); ok {
		*target = r.value
	}

	return nil
}

type fakePostgres struct {
	mu      sync.Mutex
	execs   []execCall
	cursors map[string]string
	err     error
}

func newFakePostgres() *fakePostgres {
	return &fakePostgres{cursors: make(map[string]string)}
}

func (f *fakePostgres) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}

	f.execs = append(f.execs, execCall{sql: sql, args: args})

	if len(args) == 2 {
		kind, _ := args[0].(string)
		guid, _ := args[1].(string)
		f.cursors[kind] = guid
	}

	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakePostgres) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return fakeRow{err: f.err}
	}

	kind, _ := args[0].(string)

	guid, ok := f.cursors[kind]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}

	return fakeRow{value: guid}
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []*nats.Msg
	err      error
}

func (f *fakePublisher) PublishMsg(_ context.Context, msg *nats.Msg, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	f.messages = append(f.messages, msg)

	return &jetstream.PubAck{Stream: "test-stream", Sequence: uint64(len(f.messages))}, nil
}

package collector

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	kinds, err := cfg.ParseKinds()
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindApp, KindService}, kinds)
	assert.Equal(t, constants.DefaultCollectorMinAge, cfg.MinAge)
	assert.Equal(t, constants.DefaultCollectorBatchSize, cfg.Options().BatchSize)

	cfg.Kinds = []string{"app", "route"}
	_, err = cfg.ParseKinds()
	require.ErrorIs(t, err, constants.ErrUnknownEventKind)
}

func TestOpenCursorStore(t *testing.T) {
	t.Parallel()

	backends := NewBackends()
	t.Cleanup(func() { _ = backends.Close() })

	store, err := OpenCursorStore(context.Background(), CursorConfig{}, backends)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCursorStore{}, store)

	_, err = OpenCursorStore(context.Background(), CursorConfig{Type: "etcd"}, backends)
	require.ErrorIs(t, err, constants.ErrUnknownCursorStore)

	_, err = OpenCursorStore(context.Background(), CursorConfig{Type: BackendRedis, URL: "not a url"}, backends)
	require.ErrorContains(t, err, "parsing Redis URL")
}

func TestOpenSink(t *testing.T) {
	t.Parallel()

	backends := NewBackends()
	t.Cleanup(func() { _ = backends.Close() })

	sink, err := OpenSink(context.Background(), SinkConfig{Type: BackendLog}, nil, backends, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogSink{}, sink)

	_, err = OpenSink(context.Background(), SinkConfig{Type: "kafka"}, nil, backends, zerolog.Nop())
	require.ErrorIs(t, err, constants.ErrUnknownSink)
}

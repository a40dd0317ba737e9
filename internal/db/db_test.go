package db

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/lifelog/internal/config"
	"github.com/ramanasai/lifelog/internal/kv"
)

func TestKV(t *testing.T) {
	dbh, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	b := NewKV(dbh)

	_, err = b.Read("lifelog_entries")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, b.Write("lifelog_entries", []byte(`[{"id":"1"}]`)))
	require.NoError(t, b.Write("lifelog_entries", []byte(`[{"id":"2"}]`)))

	got, err := b.Read("lifelog_entries")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"2"}]`, string(got))

	require.NoError(t, b.Erase("lifelog_entries"))
	_, err = b.Read("lifelog_entries")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, NewKV(first).Write("k", []byte("[]")))
	require.NoError(t, first.Close())

	second, err := Open(dir)
	require.NoError(t, err)
	defer second.Close()
	got, err := NewKV(second).Read("k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestOpenStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	type item struct {
		ID string `json:"id"`
	}

	for _, backend := range []string{"sqlite", "diskv", "memory"} {
		t.Run(backend, func(t *testing.T) {
			s, closer, err := OpenStore(config.StorageConfig{Backend: backend, Path: t.TempDir()}, logger)
			require.NoError(t, err)
			defer closer.Close()

			require.True(t, kv.Set(s, "lifelog_categories", []item{{ID: "a"}}))
			assert.Equal(t, []item{{ID: "a"}}, kv.Get[item](s, "lifelog_categories"))
		})
	}

	_, _, err := OpenStore(config.StorageConfig{Backend: "redis"}, logger)
	assert.Error(t, err)
}

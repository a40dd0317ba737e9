package kv

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type failingBackend struct {
	readErr, writeErr, eraseErr error
}

func (f failingBackend) Read(string) ([]byte, error) { return nil, f.readErr }
func (f failingBackend) Write(string, []byte) error  { return f.writeErr }
func (f failingBackend) Erase(string) error          { return f.eraseErr }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetSet(t *testing.T) {
	s := New(NewMemory(), quietLogger())

	assert.Equal(t, []record{}, Get[record](s, "missing"))

	want := []record{{ID: "a", Name: "one"}, {ID: "b", Name: "two"}}
	require.True(t, Set(s, "items", want))
	assert.Equal(t, want, Get[record](s, "items"))
}

func TestGetCorruptValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "invalid json", raw: "{not json"},
		{name: "wrong shape", raw: `{"id":"a"}`},
		{name: "null", raw: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := NewMemory()
			require.NoError(t, mem.Write("items", []byte(tt.raw)))
			s := New(mem, quietLogger())

			got := Get[record](s, "items")
			assert.NotNil(t, got)
			assert.Empty(t, got)

			// next write overwrites the corrupt value
			require.True(t, Set(s, "items", []record{{ID: "x"}}))
			assert.Equal(t, []record{{ID: "x"}}, Get[record](s, "items"))
		})
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := New(failingBackend{readErr: boom, writeErr: boom, eraseErr: boom}, quietLogger())

	assert.Empty(t, Get[record](s, "items"))
	assert.False(t, Set(s, "items", []record{{ID: "a"}}))
	assert.False(t, s.Remove("items"))
}

func TestRemove(t *testing.T) {
	s := New(NewMemory(), quietLogger())
	require.True(t, Set(s, "items", []record{{ID: "a"}}))

	assert.True(t, s.Remove("items"))
	assert.Empty(t, Get[record](s, "items"))
	assert.True(t, s.Remove("items"))
}

func TestSetNilWritesEmptyList(t *testing.T) {
	mem := NewMemory()
	s := New(mem, quietLogger())
	require.True(t, Set[record](s, "items", nil))

	raw, err := mem.Read("items")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestDiskv(t *testing.T) {
	b := NewDiskv(t.TempDir())

	_, err := b.Read("lifelog_categories")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write("lifelog_categories", []byte(`[{"id":"a"}]`)))
	raw, err := b.Read("lifelog_categories")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(raw))

	require.NoError(t, b.Erase("lifelog_categories"))
	require.NoError(t, b.Erase("lifelog_categories"))
	_, err = b.Read("lifelog_categories")
	assert.ErrorIs(t, err, ErrNotFound)
}

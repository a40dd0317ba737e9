package kv

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrNotFound is returned by a Backend when a key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is the raw byte store underneath a Store.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
}

// Store keeps JSON lists of records under named keys. It never returns
// storage or serialization errors to callers: failures are logged and the
// operation degrades to "no data" (reads) or "not written" (writes).
type Store struct {
	backend Backend
	log     *slog.Logger
}

func New(b Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: b, log: logger.With(slog.String("component", "kv"))}
}

// Get reads the list stored under key. Missing keys, backend failures and
// corrupt JSON all yield an empty, non-nil slice.
func Get[T any](s *Store, key string) []T {
	raw, err := s.backend.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("read failed", slog.String("key", key), slog.Any("error", err))
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("discarding corrupt value", slog.String("key", key), slog.Any("error", err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Set replaces the list stored under key and reports whether it was written.
func Set[T any](s *Store, key string, items []T) bool {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.log.Error("encode failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	if err := s.backend.Write(key, raw); err != nil {
		s.log.Error("write failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

// Remove erases key. Removing a key that does not exist succeeds.
func (s *Store) Remove(key string) bool {
	if err := s.backend.Erase(key); err != nil && !errors.Is(err, ErrNotFound) {
		s.log.Error("erase failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

package store

import (
	"slices"
	"strings"
	"time"

	"github.com/ramanasai/lifelog/internal/kv"
)

const EntriesKey = "lifelog_entries"

// Entry is a journal record. Entries are written once and never changed.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	TS       int64  `json:"ts"` // epoch milliseconds
}

func (e Entry) Time() time.Time {
	return time.UnixMilli(e.TS)
}

// FieldError names the first required field that was left empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + " is required"
}

type EntryStore struct {
	kv        *kv.Store
	newID     IDGenerator
	now       func() time.Time
	listeners []Listener
}

func NewEntryStore(s *kv.Store, ids IDGenerator, clock func() time.Time) *EntryStore {
	return &EntryStore{kv: s, newID: ids, now: clock}
}

func (s *EntryStore) OnChange(l Listener) {
	s.listeners = append(s.listeners, l)
}

// List returns entries in insertion order.
func (s *EntryStore) List() []Entry {
	return kv.Get[Entry](s.kv, EntriesKey)
}

// Newest returns entries sorted newest first; equal timestamps keep
// insertion order.
func (s *EntryStore) Newest() []Entry {
	items := s.List()
	slices.SortStableFunc(items, func(a, b Entry) int {
		switch {
		case a.TS > b.TS:
			return -1
		case a.TS < b.TS:
			return 1
		}
		return 0
	})
	return items
}

// Add records a new entry stamped with the current time. categoryID may be
// empty for an uncategorized entry.
func (s *EntryStore) Add(title, body, categoryID string) (Entry, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	switch {
	case title == "":
		return Entry{}, &FieldError{Field: "title"}
	case body == "":
		return Entry{}, &FieldError{Field: "body"}
	}

	e := Entry{
		ID:       s.newID(),
		Title:    title,
		Body:     body,
		Category: strings.TrimSpace(categoryID),
		TS:       s.now().UnixMilli(),
	}
	kv.Set(s.kv, EntriesKey, append(s.List(), e))
	for _, l := range s.listeners {
		l()
	}
	return e, nil
}

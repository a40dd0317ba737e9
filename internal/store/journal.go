package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/ramanasai/lifelog/internal/kv"
)

const MoodColor = "#f59e0b"

// Moods offered by the mood shortcut, best first.
var Moods = []string{"great", "good", "okay", "low", "awful"}

// Journal bundles the two stores the application works with.
type Journal struct {
	Categories   *CategoryStore
	Entries      *EntryStore
	MoodCategory string
}

func NewJournal(s *kv.Store, ids IDGenerator, clock func() time.Time, moodCategory string) *Journal {
	return &Journal{
		Categories:   NewCategoryStore(s, ids),
		Entries:      NewEntryStore(s, ids, clock),
		MoodCategory: moodCategory,
	}
}

// CategoryName resolves an entry's category for display. Empty and dangling
// references both read as "Uncategorized".
func (j *Journal) CategoryName(e Entry) string {
	if c, ok := j.ResolveCategory(e); ok {
		return c.Name
	}
	return "Uncategorized"
}

func (j *Journal) ResolveCategory(e Entry) (Category, bool) {
	if e.Category == "" {
		return Category{}, false
	}
	return j.Categories.Find(e.Category)
}

// LogMood records a mood entry under the mood category, creating that
// category on first use.
func (j *Journal) LogMood(mood, note string) (Entry, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return Entry{}, &FieldError{Field: "mood"}
	}

	cat, ok := j.Categories.FindByName(j.MoodCategory)
	if !ok {
		var err error
		cat, err = j.Categories.Add(j.MoodCategory, MoodColor)
		if err != nil {
			return Entry{}, fmt.Errorf("create mood category: %w", err)
		}
	}

	body := strings.TrimSpace(note)
	if body == "" {
		body = mood
	}
	return j.Entries.Add("Mood: "+mood, body, cat.ID)
}

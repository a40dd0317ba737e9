package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ramanasai/lifelog/internal/kv"
)

const (
	CategoriesKey = "lifelog_categories"
	DefaultColor  = "#7c3aed"
)

var (
	ErrEmptyName = errors.New("category name is required")
	ErrNotFound  = errors.New("category not found")

	ErrInvalidColor = errors.New("category color must be a hex color like #rgb or #rrggbb")
)

var validate = validator.New()

// normalizeColor trims c and checks it is #rgb or #rrggbb, the forms the
// renderers understand.
func normalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if len(c) != 4 && len(c) != 7 {
		return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	if err := validate.Var(c, "hexcolor"); err != nil {
		return "", fmt.Errorf("%q: %w", c, ErrInvalidColor)
	}
	return c, nil
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Listener is called after a store persists a mutation.
type Listener func()

// CategoryStore keeps the ordered category list. List position is the only
// ordering signal; every mutation rewrites the whole list.
type CategoryStore struct {
	kv        *kv.Store
	newID     IDGenerator
	listeners []Listener
}

func NewCategoryStore(s *kv.Store, ids IDGenerator) *CategoryStore {
	return &CategoryStore{kv: s, newID: ids}
}

// OnChange registers l to run after every persisted mutation.
func (s *CategoryStore) OnChange(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *CategoryStore) List() []Category {
	return kv.Get[Category](s.kv, CategoriesKey)
}

func (s *CategoryStore) Find(id string) (Category, bool) {
	for _, c := range s.List() {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindByName matches a trimmed name case-insensitively; the first match wins.
func (s *CategoryStore) FindByName(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range s.List() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Lookup resolves ref as an id first and then as a name.
func (s *CategoryStore) Lookup(ref string) (Category, error) {
	if c, ok := s.Find(ref); ok {
		return c, nil
	}
	if c, ok := s.FindByName(ref); ok {
		return c, nil
	}
	return Category{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
}

// Add appends a category. An empty color falls back to DefaultColor.
func (s *CategoryStore) Add(name, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultColor
	}
	color, err := normalizeColor(color)
	if err != nil {
		return Category{}, err
	}

	c := Category{ID: s.newID(), Name: name, Color: color}
	items := append(s.List(), c)
	s.save(items)
	return c, nil
}

// Update renames and/or recolors id. Blank inputs keep the previous value.
// Nothing is written when id is unknown or color is not a hex color.
func (s *CategoryStore) Update(id, name, color string) (Category, error) {
	items := s.List()
	idx := slices.IndexFunc(items, func(c Category) bool { return c.ID == id })
	if idx < 0 {
		return Category{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	if strings.TrimSpace(color) != "" {
		c, err := normalizeColor(color)
		if err != nil {
			return Category{}, err
		}
		items[idx].Color = c
	}
	if n := strings.TrimSpace(name); n != "" {
		items[idx].Name = n
	}
	s.save(items)
	return items[idx], nil
}

func (s *CategoryStore) Remove(id string) bool {
	items := s.List()
	next := slices.DeleteFunc(slices.Clone(items), func(c Category) bool { return c.ID == id })
	if len(next) == len(items) {
		return false
	}
	s.save(next)
	return true
}

// Move takes draggedID out of the list and reinserts it at the index
// targetID occupies before the removal.
func (s *CategoryStore) Move(draggedID, targetID string) bool {
	if draggedID == "" || draggedID == targetID {
		return false
	}
	items := s.List()
	from := slices.IndexFunc(items, func(c Category) bool { return c.ID == draggedID })
	to := slices.IndexFunc(items, func(c Category) bool { return c.ID == targetID })
	if from < 0 || to < 0 {
		return false
	}

	moved := items[from]
	items = slices.Delete(items, from, from+1)
	items = slices.Insert(items, to, moved)
	s.save(items)
	return true
}

func (s *CategoryStore) save(items []Category) {
	kv.Set(s.kv, CategoriesKey, items)
	for _, l := range s.listeners {
		l()
	}
}

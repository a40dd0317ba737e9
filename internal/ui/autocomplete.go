package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SuggestFunc returns at most limit completions for query.
type SuggestFunc func(query string, limit int) []string

// AutocompleteModel is a text input with a suggestion list underneath.
type AutocompleteModel struct {
	input          textinput.Model
	suggestions    []string
	showing        bool
	selected       int
	source         SuggestFunc
	style          lipgloss.Style
	maxSuggestions int
}

// AutocompleteMsg carries fresh suggestions back into Update.
type AutocompleteMsg struct {
	Suggestions []string
}

func NewAutocomplete(source SuggestFunc, maxSuggestions int) AutocompleteModel {
	return AutocompleteModel{
		input:          textinput.New(),
		source:         source,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// PrefixMatches suggests names starting with query, then names containing it.
func PrefixMatches(names func() []string) SuggestFunc {
	return func(query string, limit int) []string {
		q := strings.ToLower(strings.TrimSpace(query))
		if q == "" {
			return nil
		}
		var prefix, contains []string
		for _, n := range names() {
			ln := strings.ToLower(n)
			switch {
			case strings.HasPrefix(ln, q):
				prefix = append(prefix, n)
			case strings.Contains(ln, q):
				contains = append(contains, n)
			}
		}
		out := append(prefix, contains...)
		if len(out) > limit {
			out = out[:limit]
		}
		return out
	}
}

func (m AutocompleteModel) Update(msg tea.Msg) (AutocompleteModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyDown:
			if m.showing && len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyUp:
			if m.showing && len(m.suggestions) > 0 {
				m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyEnter:
			if m.showing && len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[m.selected])
				m.input.CursorEnd()
				m.showing = false
				m.selected = 0
				return m, nil
			}
		case tea.KeyEscape:
			if m.showing {
				m.showing = false
				m.selected = 0
				return m, nil
			}
		}

		old := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != old {
			return m, tea.Batch(cmd, m.fetchSuggestions())
		}
		return m, cmd

	case AutocompleteMsg:
		m.suggestions = msg.Suggestions
		m.showing = len(m.suggestions) > 0 && m.input.Value() != ""
		m.selected = 0
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AutocompleteModel) fetchSuggestions() tea.Cmd {
	query := m.input.Value()
	source, limit := m.source, m.maxSuggestions
	return func() tea.Msg {
		if source == nil || query == "" {
			return AutocompleteMsg{}
		}
		return AutocompleteMsg{Suggestions: source(query, limit)}
	}
}

func (m AutocompleteModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if m.showing {
		for i, s := range m.suggestions {
			b.WriteString("\n")
			if i == m.selected {
				b.WriteString(m.style.Copy().Foreground(lipgloss.Color("12")).Render("▶ " + s))
			} else {
				b.WriteString(m.style.Render("  " + s))
			}
		}
	}
	return b.String()
}

func (m AutocompleteModel) Value() string { return m.input.Value() }

func (m *AutocompleteModel) SetValue(v string) { m.input.SetValue(v) }

func (m *AutocompleteModel) Focus() tea.Cmd {
	m.showing = false
	m.selected = 0
	return m.input.Focus()
}

func (m *AutocompleteModel) Blur() {
	m.input.Blur()
	m.showing = false
	m.selected = 0
}

func (m AutocompleteModel) Focused() bool { return m.input.Focused() }

func (m *AutocompleteModel) SetWidth(w int) { m.input.Width = w }

func (m *AutocompleteModel) SetPlaceholder(p string) { m.input.Placeholder = p }

func (m AutocompleteModel) Suggestions() []string { return m.suggestions }

// Showing reports whether the suggestion list is open.
func (m AutocompleteModel) Showing() bool { return m.showing }

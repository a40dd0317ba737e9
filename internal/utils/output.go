package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"

	"github.com/ramanasai/lifelog/internal/store"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatYAML    OutputFormat = "yaml"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

// Formats lists every accepted --format value.
var Formats = []OutputFormat{FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatYAML, FormatCompact, FormatQuiet}

// ParseFormat accepts a --format value, case-insensitively.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatDefault, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	Color    bool
	Location *time.Location
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		Color:    true,
		Location: time.UTC,
	}
}

// Entry is a journal entry with its category resolved for display.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	Category  string    `json:"category" yaml:"category"`
	Color     string    `json:"-" yaml:"-"`
}

// NewEntry resolves e's category through j; empty and dangling references
// read as "Uncategorized".
func NewEntry(j *store.Journal, e store.Entry) Entry {
	out := Entry{
		ID:        e.ID,
		Timestamp: e.Time(),
		Title:     e.Title,
		Body:      e.Body,
		Category:  "Uncategorized",
	}
	if c, ok := j.ResolveCategory(e); ok {
		out.Category, out.Color = c.Name, c.Color
	}
	return out
}

// EntryList represents a list of entries with pagination info
type EntryList struct {
	Entries    []Entry           `json:"entries" yaml:"entries"`
	Total      int               `json:"total" yaml:"total"`
	Page       int               `json:"page,omitempty" yaml:"page,omitempty"`
	PerPage    int               `json:"per_page,omitempty" yaml:"per_page,omitempty"`
	TotalPages int               `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
	Filters    map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Time      lipgloss.Style
	Category  lipgloss.Style
	Text      lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			ID:        plain,
			Time:      plain,
			Category:  plain.Bold(true),
			Text:      plain,
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		ID:        lipgloss.NewStyle().Faint(true),
		Time:      lipgloss.NewStyle().Faint(true),
		Category:  lipgloss.NewStyle().Bold(true),
		Text:      lipgloss.NewStyle(),
	}
}

// RenderEntryList renders a list of entries according to the configured format
func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatYAML:
		return r.renderYAML(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	case FormatQuiet:
		return r.renderQuiet(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

func (r *Renderer) renderDefault(list *EntryList) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Journal"))
	if since := list.Filters["since"]; since != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Separator.Render("since "))
		b.WriteString(r.styles.Meta.Render(since))
	}
	b.WriteString("\n" + r.rule() + "\n")

	if len(list.Entries) == 0 {
		b.WriteString(r.styles.Meta.Render("No entries"))
		b.WriteString("\n")
		return b.String()
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		b.WriteString("\n" + r.rule() + "\n")
	}

	for _, e := range list.Entries {
		b.WriteString(r.renderSingleEntry(e))
		b.WriteString(r.rule() + "\n")
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) renderSingleEntry(e Entry) string {
	var b strings.Builder

	var meta []string
	if r.config.ShowID {
		meta = append(meta, r.styles.ID.Render("["+e.ID+"]"))
	}
	t := e.Timestamp.In(r.config.Location)
	meta = append(meta,
		r.styles.Time.Render(t.Format("2006-01-02 03:04 PM")),
		r.categoryStyle(e).Render(e.Category),
	)
	b.WriteString(strings.Join(meta, "  "))
	b.WriteString("\n")

	b.WriteString(r.styles.Title.Render("  " + e.Title))
	b.WriteString("\n")
	for _, line := range strings.Split(e.Body, "\n") {
		b.WriteString(r.styles.Text.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) categoryStyle(e Entry) lipgloss.Style {
	if !r.config.Color || e.Color == "" {
		return r.styles.Category
	}
	return r.styles.Category.Foreground(lipgloss.Color(e.Color))
}

func (r *Renderer) renderJSON(list *EntryList) (string, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderYAML(list *EntryList) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "timestamp", "category", "title", "body"})
	for _, e := range list.Entries {
		_ = w.Write([]string{
			e.ID,
			e.Timestamp.In(r.config.Location).Format(time.RFC3339),
			e.Category,
			e.Title,
			e.Body,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderTable(list *EntryList) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(max(20, r.config.Width/3))
	if r.config.ShowID {
		tbl.AddRow("ID", "TIME", "CATEGORY", "TITLE", "BODY")
	} else {
		tbl.AddRow("TIME", "CATEGORY", "TITLE", "BODY")
	}
	for _, e := range list.Entries {
		when := e.Timestamp.In(r.config.Location).Format("2006-01-02 15:04")
		body := strings.ReplaceAll(e.Body, "\n", " ")
		if r.config.ShowID {
			tbl.AddRow(e.ID, when, e.Category, e.Title, body)
		} else {
			tbl.AddRow(when, e.Category, e.Title, body)
		}
	}
	return tbl.String() + "\n"
}

func (r *Renderer) renderCompact(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		when := e.Timestamp.In(r.config.Location).Format("01-02 15:04")
		body := truncate.StringWithTail(strings.ReplaceAll(e.Body, "\n", " "), 60, "...")
		fmt.Fprintf(&b, "%s %s %s: %s\n",
			r.styles.Time.Render(when),
			r.categoryStyle(e).Render(e.Category),
			e.Title,
			body)
	}
	return b.String()
}

// renderQuiet prints entry ids only, for scripting.
func (r *Renderer) renderQuiet(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(e.ID)
		b.WriteString("\n")
	}
	return b.String()
}

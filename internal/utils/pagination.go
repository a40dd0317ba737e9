package utils

import (
	"fmt"
	"strings"
)

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination clamps current into [1, TotalPages]. A non-positive perPage
// shows everything on one page.
func NewPagination(total, perPage, current int) *PaginationInfo {
	if perPage <= 0 {
		perPage = max(total, 1)
	}
	totalPages := max(1, (total+perPage-1)/perPage)
	current = min(max(current, 1), totalPages)

	return &PaginationInfo{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: totalPages,
	}
}

// Paginate returns the slice of items on p's current page.
func Paginate[T any](items []T, p *PaginationInfo) []T {
	start := min(p.Offset, len(items))
	end := min(p.Offset+p.PerPage, len(items))
	return items[start:end]
}

// GetRange returns the range of items on the current page (1-indexed)
func (p *PaginationInfo) GetRange() (start, end int) {
	return p.Offset + 1, min(p.Offset+p.PerPage, p.Total)
}

func (p *PaginationInfo) HasNext() bool { return p.Current < p.TotalPages }
func (p *PaginationInfo) HasPrev() bool { return p.Current > 1 }

// FormatSummary returns a human-readable summary
func (p *PaginationInfo) FormatSummary() string {
	if p.Total == 0 {
		return "No results"
	}

	start, end := p.GetRange()
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %d entr%s", start, end, p.Total, plural(p.Total))
	}
	return fmt.Sprintf("Showing %d-%d of %d entr%s (page %d of %d)",
		start, end, p.Total, plural(p.Total), p.Current, p.TotalPages)
}

// FormatNavigation returns --page hints for the CLI
func (p *PaginationInfo) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}

	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.Current+1))
	}
	return strings.Join(hints, ", ")
}

func plural(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}

package stats

import (
	"math"
	"slices"
	"time"

	"github.com/ramanasai/lifelog/internal/store"
)

const (
	dayMs = int64(24 * time.Hour / time.Millisecond)

	// ZeroWidth is the bar width (percent) drawn for a category with no entries.
	ZeroWidth = 4
	// MinWidth is the smallest bar width (percent) for a non-empty category.
	MinWidth = 6
)

// Usage pairs a category with its entry count.
type Usage struct {
	Category store.Category
	Count    int
}

// Row is one bar of the usage chart.
type Row struct {
	Category store.Category
	Count    int
	Width    int // percent of the chart width
}

// Snapshot is derived from the current categories and entries; it is never
// stored.
type Snapshot struct {
	Total      int
	Counts     map[string]int // category id -> entries; unknown ids excluded
	MostUsed   *Usage
	LeastUsed  *Usage
	Last7Days  int
	Last30Days int
	Rows       []Row
}

// Compute builds a Snapshot. Ties for most/least used go to the category
// that comes first in categories.
func Compute(categories []store.Category, entries []store.Entry, now time.Time) Snapshot {
	snap := Snapshot{
		Total:  len(entries),
		Counts: make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		snap.Counts[c.ID] = 0
	}

	nowMs := now.UnixMilli()
	for _, e := range entries {
		if _, ok := snap.Counts[e.Category]; ok && e.Category != "" {
			snap.Counts[e.Category]++
		}
		age := nowMs - e.TS
		if age <= 7*dayMs {
			snap.Last7Days++
		}
		if age <= 30*dayMs {
			snap.Last30Days++
		}
	}

	for _, c := range categories {
		n := snap.Counts[c.ID]
		if n == 0 {
			continue
		}
		if snap.MostUsed == nil || n > snap.MostUsed.Count {
			snap.MostUsed = &Usage{Category: c, Count: n}
		}
		if snap.LeastUsed == nil || n < snap.LeastUsed.Count {
			snap.LeastUsed = &Usage{Category: c, Count: n}
		}
	}

	snap.Rows = chartRows(categories, snap.Counts)
	return snap
}

func chartRows(categories []store.Category, counts map[string]int) []Row {
	maxCount := 1
	for _, c := range categories {
		maxCount = max(maxCount, counts[c.ID])
	}

	rows := make([]Row, 0, len(categories))
	for _, c := range categories {
		n := counts[c.ID]
		rows = append(rows, Row{Category: c, Count: n, Width: BarWidth(n, maxCount)})
	}
	slices.SortStableFunc(rows, func(a, b Row) int { return b.Count - a.Count })
	return rows
}

// BarWidth maps a count to a bar width percentage relative to maxCount.
func BarWidth(count, maxCount int) int {
	if count <= 0 {
		return ZeroWidth
	}
	maxCount = max(maxCount, 1)
	pct := int(math.Round(float64(count) / float64(maxCount) * 100))
	return max(MinWidth, pct)
}

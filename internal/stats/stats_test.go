package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/lifelog/internal/store"
)

var (
	now  = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	day  = 24 * time.Hour
	catA = store.Category{ID: "a", Name: "A", Color: "#ff0000"}
	catB = store.Category{ID: "b", Name: "B", Color: "#00ff00"}
	catC = store.Category{ID: "c", Name: "C", Color: "#0000ff"}
)

func entryAt(cat string, at time.Time) store.Entry {
	return store.Entry{ID: cat + at.String(), Title: "t", Body: "b", Category: cat, TS: at.UnixMilli()}
}

func TestMostAndLeastUsed(t *testing.T) {
	snap := Compute(
		[]store.Category{catA, catB},
		[]store.Entry{entryAt("a", now), entryAt("a", now), entryAt("b", now)},
		now,
	)
	require.NotNil(t, snap.MostUsed)
	require.NotNil(t, snap.LeastUsed)
	assert.Equal(t, Usage{Category: catA, Count: 2}, *snap.MostUsed)
	assert.Equal(t, Usage{Category: catB, Count: 1}, *snap.LeastUsed)
}

func TestTiesGoToFirstCategory(t *testing.T) {
	snap := Compute(
		[]store.Category{catA, catB, catC},
		[]store.Entry{entryAt("c", now), entryAt("b", now)},
		now,
	)
	assert.Equal(t, "b", snap.MostUsed.Category.ID)
	assert.Equal(t, "b", snap.LeastUsed.Category.ID)
}

func TestNoUsage(t *testing.T) {
	snap := Compute([]store.Category{catA}, []store.Entry{entryAt("", now)}, now)
	assert.Nil(t, snap.MostUsed)
	assert.Nil(t, snap.LeastUsed)
	assert.Equal(t, 1, snap.Total)

	empty := Compute(nil, nil, now)
	assert.Nil(t, empty.MostUsed)
	assert.Empty(t, empty.Rows)
	assert.Empty(t, empty.Counts)
}

func TestCountsExcludeUnknownAndEmpty(t *testing.T) {
	snap := Compute(
		[]store.Category{catA, catB},
		[]store.Entry{entryAt("a", now), entryAt("", now), entryAt("deleted", now)},
		now,
	)
	assert.Equal(t, map[string]int{"a": 1, "b": 0}, snap.Counts)
	assert.Equal(t, 3, snap.Total)
}

func TestTimeWindows(t *testing.T) {
	entries := []store.Entry{
		entryAt("a", now),
		entryAt("a", now.Add(-7*day)), // boundary: inclusive
		entryAt("a", now.Add(-7*day-time.Millisecond)),
		entryAt("a", now.Add(-8*day)),
		entryAt("a", now.Add(-30*day)),
		entryAt("a", now.Add(-31*day)),
	}
	snap := Compute([]store.Category{catA}, entries, now)
	assert.Equal(t, 2, snap.Last7Days)
	assert.Equal(t, 5, snap.Last30Days)
}

func TestEightDaysOldEntry(t *testing.T) {
	snap := Compute(nil, []store.Entry{entryAt("", now.Add(-8*day))}, now)
	assert.Equal(t, 0, snap.Last7Days)
	assert.Equal(t, 1, snap.Last30Days)
}

func TestChartRows(t *testing.T) {
	var entries []store.Entry
	for range 40 {
		entries = append(entries, entryAt("b", now))
	}
	entries = append(entries, entryAt("c", now))

	snap := Compute([]store.Category{catA, catB, catC}, entries, now)
	assert.Equal(t, []Row{
		{Category: catB, Count: 40, Width: 100},
		{Category: catC, Count: 1, Width: MinWidth},
		{Category: catA, Count: 0, Width: ZeroWidth},
	}, snap.Rows)
}

func TestChartRowsStableForTies(t *testing.T) {
	snap := Compute([]store.Category{catA, catB, catC}, nil, now)
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, "a", snap.Rows[0].Category.ID)
	assert.Equal(t, "b", snap.Rows[1].Category.ID)
	assert.Equal(t, "c", snap.Rows[2].Category.ID)
	for _, r := range snap.Rows {
		assert.Equal(t, ZeroWidth, r.Width)
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		count, max, want int
	}{
		{count: 0, max: 10, want: ZeroWidth},
		{count: 1, max: 100, want: MinWidth},
		{count: 1, max: 2, want: 50},
		{count: 1, max: 3, want: 33},
		{count: 2, max: 3, want: 67},
		{count: 3, max: 3, want: 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BarWidth(tt.count, tt.max), "count=%d max=%d", tt.count, tt.max)
	}
}

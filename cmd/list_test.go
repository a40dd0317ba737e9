package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/lifelog/internal/stats"
	"github.com/ramanasai/lifelog/internal/store"
	"github.com/ramanasai/lifelog/internal/utils"
)

func TestPageSize(t *testing.T) {
	n, err := pageSize(20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = pageSize(2000)
	require.NoError(t, err)
	assert.Equal(t, maxLimit, n, "capped, not reset to the default")

	_, err = pageSize(0)
	assert.Error(t, err)
	_, err = pageSize(-5)
	assert.Error(t, err)
}

func TestRollingPresetsMatchStats(t *testing.T) {
	now := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)
	at := func(d time.Duration) store.Entry {
		return store.Entry{ID: d.String(), Title: "t", Body: "b", TS: now.Add(-d).UnixMilli()}
	}
	entries := []store.Entry{
		at(0),
		at(6*24*time.Hour + 23*time.Hour),
		at(7 * 24 * time.Hour),
		at(7*24*time.Hour + 16*time.Hour), // after local midnight seven days back
		at(29 * 24 * time.Hour),
		at(31 * 24 * time.Hour),
	}
	snap := stats.Compute(nil, entries, now)

	from, until, err := utils.GetDateRange("last7days", now)
	require.NoError(t, err)
	assert.Len(t, filterEntries(entries, from, until), snap.Last7Days)
	assert.Equal(t, 3, snap.Last7Days)

	from, until, err = utils.GetDateRange("last30days", now)
	require.NoError(t, err)
	assert.Len(t, filterEntries(entries, from, until), snap.Last30Days)
}

func TestFilterEntriesBounds(t *testing.T) {
	base := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	entries := []store.Entry{
		{ID: "a", TS: base.Add(-time.Minute).UnixMilli()},
		{ID: "b", TS: base.UnixMilli()},
		{ID: "c", TS: base.Add(24 * time.Hour).UnixMilli()},
	}
	got := filterEntries(entries, base, base.Add(24*time.Hour))
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Len(t, filterEntries(entries, time.Time{}, time.Time{}), 3)
}

package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	agoRe      = regexp.MustCompile(`^(\d+)\s*([smhdwy])$`)
	quantityRe = regexp.MustCompile(`^(\d+)\s+(minute|minutes|hour|hours|day|days|week|weeks|month|months|year|years)(\s+ago)?$`)
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseFlexibleDate resolves absolute dates and phrases such as "yesterday",
// "3 days", "2h ago" or "this week" relative to now, in now's location.
func ParseFlexibleDate(input string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(input)
	input = strings.ToLower(raw)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	loc := now.Location()

	switch input {
	case "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now.AddDate(0, 0, -1)), nil
	}

	if rest, ok := strings.CutPrefix(input, "last "); ok {
		switch rest {
		case "day":
			return now.AddDate(0, 0, -1), nil
		case "week":
			return now.AddDate(0, 0, -7), nil
		case "month":
			return now.AddDate(0, -1, 0), nil
		case "year":
			return now.AddDate(-1, 0, 0), nil
		}
	}

	if rest, ok := strings.CutPrefix(input, "this "); ok {
		switch rest {
		case "week":
			return startOfWeek(now), nil
		case "month":
			return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
		case "year":
			return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
		}
	}

	if rest, ok := strings.CutSuffix(input, " ago"); ok {
		if m := agoRe.FindStringSubmatch(rest); m != nil {
			n, _ := strconv.Atoi(m[1])
			return shift(now, n, m[2]), nil
		}
	}

	if m := quantityRe.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		unit := m[2][:1]
		if strings.HasPrefix(m[2], "mo") {
			unit = "mo"
		}
		return shift(now, n, unit), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// shift moves now back by n units. unit is the first letter of the unit name,
// except "mo" for months; a bare "m" is minutes.
func shift(now time.Time, n int, unit string) time.Time {
	switch unit {
	case "s":
		return now.Add(-time.Duration(n) * time.Second)
	case "h":
		return now.Add(-time.Duration(n) * time.Hour)
	case "d":
		return now.AddDate(0, 0, -n)
	case "w":
		return now.AddDate(0, 0, -7*n)
	case "y":
		return now.AddDate(-n, 0, 0)
	case "mo":
		return now.AddDate(0, -n, 0)
	default:
		return now.Add(-time.Duration(n) * time.Minute)
	}
}

const day = 24 * time.Hour

// GetDateRange returns the [start, end) window for a named preset. The
// rolling last7days and last30days windows reach back exactly 7 or 30 days
// from now, the same windows stats counts, and have a zero end: they are
// open-ended.
func GetDateRange(preset string, now time.Time) (time.Time, time.Time, error) {
	today := startOfDay(now)

	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "today":
		return today, today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), today, nil
	case "week":
		start := startOfWeek(now)
		return start, start.AddDate(0, 0, 7), nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case "last7days", "last-7-days":
		return now.Add(-7 * day), time.Time{}, nil
	case "last30days", "last-30-days":
		return now.Add(-30 * day), time.Time{}, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date preset: %s", preset)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek is Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return startOfDay(t.AddDate(0, 0, -(wd - 1)))
}

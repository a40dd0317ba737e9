package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/lifelog/internal/config"
)

// NextAt computes the next reminder time strictly after now that falls on a
// configured workday and is not a holiday. With no workdays configured every
// day qualifies.
func NextAt(now time.Time, cfg config.ReminderConfig, loc *time.Location) time.Time {
	now = now.In(loc)

	hour, min := 20, 0
	if t, err := time.Parse("15:04", strings.TrimSpace(cfg.Time)); err == nil {
		hour, min = t.Hour(), t.Minute()
	}

	workdays := map[string]bool{}
	for _, d := range cfg.Workdays {
		if len(d) >= 3 {
			workdays[strings.ToLower(d[:3])] = true
		}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}
	allowed := func(t time.Time) bool {
		if len(workdays) > 0 && !workdays[strings.ToLower(t.Weekday().String()[:3])] {
			return false
		}
		return !holidays[t.Format("2006-01-02")]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a year of holidays is the most that can block every candidate
	for range 366 {
		if allowed(cand) {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// Run calls f at each scheduled reminder until ctx is canceled.
func Run(ctx context.Context, cfg config.ReminderConfig, loc *time.Location, f func()) {
	t := time.NewTimer(time.Until(NextAt(time.Now(), cfg, loc)))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			t.Reset(time.Until(NextAt(time.Now(), cfg, loc)))
		}
	}
}

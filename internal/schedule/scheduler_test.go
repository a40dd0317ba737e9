package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramanasai/lifelog/internal/config"
)

func TestNextAt(t *testing.T) {
	// 2025-06-04 is a Wednesday
	wed := func(h, m int) time.Time { return time.Date(2025, 6, 4, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		cfg  config.ReminderConfig
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			cfg:  config.ReminderConfig{Time: "20:00"},
			now:  wed(9, 0),
			want: wed(20, 0),
		},
		{
			name: "exactly at reminder time rolls to tomorrow",
			cfg:  config.ReminderConfig{Time: "20:00"},
			now:  wed(20, 0),
			want: time.Date(2025, 6, 5, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "skips to next workday",
			cfg:  config.ReminderConfig{Time: "08:30", Workdays: []string{"Mon"}},
			now:  wed(9, 0),
			want: time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "skips holidays",
			cfg:  config.ReminderConfig{Time: "20:00", Holidays: []string{"2025-06-04", "2025-06-05"}},
			now:  wed(9, 0),
			want: time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "unparsable time uses evening default",
			cfg:  config.ReminderConfig{Time: "soon"},
			now:  wed(9, 0),
			want: wed(20, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAt(tt.now, tt.cfg, time.UTC))
		})
	}
}

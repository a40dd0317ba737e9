package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/schedule"
	"github.com/ramanasai/lifelog/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the paged TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.cfg
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var opts []ui.Option
		switch {
		case cfg.Reminder.Enabled && !app.notifier.Enabled():
			app.log.Warn("daily reminder skipped: notifications are disabled")
		case cfg.Reminder.Enabled:
			loc := cfg.Location()
			app.log.Info("daily reminder scheduled", "next", schedule.NextAt(time.Now(), cfg.Reminder, loc))

			reminders := make(chan struct{})
			go schedule.Run(ctx, cfg.Reminder, loc, func() {
				select {
				case reminders <- struct{}{}:
				case <-ctx.Done():
				}
			})
			opts = append(opts, ui.WithReminders(reminders))
		}
		return ui.Run(ui.New(cfg, app.journal, app.notifier, app.log, opts...))
	},
}

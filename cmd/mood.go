package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/notify"
	"github.com/ramanasai/lifelog/internal/store"
)

var moodCmd = &cobra.Command{
	Use:       "mood MOOD [note...]",
	Short:     "Log how you feel (" + strings.Join(store.Moods, ", ") + ")",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: store.Moods,
	RunE: func(cmd *cobra.Command, args []string) error {
		mood := strings.ToLower(args[0])
		if !slices.Contains(store.Moods, mood) {
			return fmt.Errorf("unknown mood %q (want one of %s)", args[0], strings.Join(store.Moods, ", "))
		}

		e, err := app.journal.LogMood(mood, strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("mood: %w", err)
		}
		app.notifier.Notify(notify.FormatMoodLogged(mood))
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s\n", e.Title)
		return nil
	},
}

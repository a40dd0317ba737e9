package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/ui"
)

var actionCmd = &cobra.Command{
	Use:   "action quick|long|picture|video",
	Short: "Run a home screen quick action",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(ui.QuickActions))
		for i, a := range ui.QuickActions {
			names[i] = string(a)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		notice, ok := ui.Dispatch(ui.QuickAction(args[0]), app.notifier, app.log)
		if !ok {
			return fmt.Errorf("unknown action %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), notice)
		return nil
	},
}

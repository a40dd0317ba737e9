package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	logTitle    string
	logCategory string
)

var logCmd = &cobra.Command{
	Use:   "log [body...]",
	Short: "Add a journal entry",
	Example: `  lifelog log --title "Standup" --category Work went fine
  lifelog log -t "Run" 5k in the rain`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var categoryID string
		if strings.TrimSpace(logCategory) != "" {
			c, err := app.journal.Categories.Lookup(logCategory)
			if err != nil {
				return err
			}
			categoryID = c.ID
		}

		e, err := app.journal.Entries.Add(logTitle, strings.Join(args, " "), categoryID)
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Saved %s ", e.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "(%s)\n", e.ID)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logTitle, "title", "t", "", "Entry title (required)")
	logCmd.Flags().StringVarP(&logCategory, "category", "c", "", "Category name or id")
}

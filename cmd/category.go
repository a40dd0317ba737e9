package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/store"
)

var (
	categoryColor string
	categoryName  string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cats := app.journal.Categories.List()
		if len(cats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No categories yet.")
			return nil
		}

		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("#"), bold.Sprint("ID"), bold.Sprint("NAME"), bold.Sprint("COLOR"))
		for i, c := range cats {
			tbl.AddRow(i+1, c.ID, c.Name, c.Color)
		}
		tbl.RightAlign(0)
		fmt.Fprintln(cmd.OutOrStdout(), tbl)
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category at the end of the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.journal.Categories.Add(args[0], categoryColor)
		if err != nil {
			return err
		}
		printCategory(cmd, "Added", c)
		return nil
	},
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit ID|NAME",
	Short: "Rename or recolor a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.journal.Categories.Lookup(args[0])
		if err != nil {
			return err
		}
		c, err = app.journal.Categories.Update(c.ID, categoryName, categoryColor)
		if err != nil {
			return err
		}
		printCategory(cmd, "Saved", c)
		return nil
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:     "rm ID|NAME",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a category (its entries become Uncategorized)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.journal.Categories.Lookup(args[0])
		if err != nil {
			return err
		}
		app.journal.Categories.Remove(c.ID)
		printCategory(cmd, "Removed", c)
		return nil
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move DRAGGED TARGET",
	Short: "Move a category to the position another one holds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dragged, err := app.journal.Categories.Lookup(args[0])
		if err != nil {
			return err
		}
		target, err := app.journal.Categories.Lookup(args[1])
		if err != nil {
			return err
		}
		if !app.journal.Categories.Move(dragged.ID, target.ID) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to move.")
			return nil
		}
		printCategory(cmd, "Moved", dragged)
		return nil
	},
}

func printCategory(cmd *cobra.Command, verb string, c store.Category) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s ", verb)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", c.Name, c.ID, c.Color)
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color (default "+store.DefaultColor+")")
	categoryEditCmd.Flags().StringVar(&categoryColor, "color", "", "New hex color")
	categoryEditCmd.Flags().StringVar(&categoryName, "name", "", "New name")

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryEditCmd, categoryRemoveCmd, categoryMoveCmd)
}

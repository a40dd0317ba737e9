package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/store"
	"github.com/ramanasai/lifelog/internal/utils"
)

const maxLimit = 1000

var (
	since   string
	preset  string
	limit   int
	page    int
	format  string
	noColor bool
	showIDs bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Example: `  lifelog list                                # everything
  lifelog list --since yesterday              # since yesterday
  lifelog list --preset last7days             # last 7 days
  lifelog list --format table --limit 50      # table format
  lifelog list --format yaml --page 2         # second page as YAML`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := app.cfg.Location()
		now := time.Now().In(loc)

		f, err := utils.ParseFormat(format)
		if err != nil {
			return err
		}
		rc := utils.DefaultRenderConfig()
		rc.Format = f
		rc.Color = !noColor
		rc.ShowID = showIDs
		rc.Location = loc

		filters := map[string]string{}
		var from, until time.Time
		switch {
		case preset != "":
			if from, until, err = utils.GetDateRange(preset, now); err != nil {
				return fmt.Errorf("invalid --preset %q: %w", preset, err)
			}
			filters["preset"] = preset
		case since != "":
			if from, err = utils.ParseFlexibleDate(since, now); err != nil {
				return fmt.Errorf("invalid --since date %q: %w", since, err)
			}
		}
		if !from.IsZero() {
			filters["since"] = from.Format("2006-01-02 03:04 PM MST")
		}

		perPage, err := pageSize(limit)
		if err != nil {
			return err
		}
		entries := filterEntries(app.journal.Entries.Newest(), from, until)
		p := utils.NewPagination(len(entries), perPage, page)

		out := make([]utils.Entry, 0, p.PerPage)
		for _, e := range utils.Paginate(entries, p) {
			out = append(out, utils.NewEntry(app.journal, e))
		}

		rendered, err := utils.NewRenderer(rc).RenderEntryList(&utils.EntryList{
			Entries:    out,
			Total:      p.Total,
			Page:       p.Current,
			PerPage:    p.PerPage,
			TotalPages: p.TotalPages,
			Filters:    filters,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&since, "since", "", "Date/time filter (yesterday, 'last week', '2h ago', 2025-01-15, ...)")
	listCmd.Flags().StringVar(&preset, "preset", "", "Date preset: today, yesterday, week, month, last7days, last30days")
	listCmd.Flags().IntVar(&limit, "limit", 50, "Entries per page (at most 1000)")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number to show")
	listCmd.Flags().StringVar(&format, "format", "default", "Output format: default, table, json, csv, yaml, compact, quiet")
	listCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	listCmd.Flags().BoolVar(&showIDs, "ids", false, "Show entry ids")
}

// pageSize caps --limit at maxLimit and rejects values below 1.
func pageSize(limit int) (int, error) {
	if limit < 1 {
		return 0, fmt.Errorf("invalid --limit %d: must be at least 1", limit)
	}
	return min(limit, maxLimit), nil
}

// filterEntries keeps entries in [from, until). A zero bound is open.
func filterEntries(entries []store.Entry, from, until time.Time) []store.Entry {
	var out []store.Entry
	for _, e := range entries {
		t := e.Time()
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !until.IsZero() && !t.Before(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}

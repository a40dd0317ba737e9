package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/lifelog/internal/stats"
)

var (
	statsNow   string
	statsWidth int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entry counts and the category usage chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if statsNow != "" {
			t, err := time.Parse(time.RFC3339, statsNow)
			if err != nil {
				return fmt.Errorf("invalid --now %q: %w", statsNow, err)
			}
			now = t
		}

		s := stats.Compute(app.journal.Categories.List(), app.journal.Entries.List(), now)
		fmt.Fprint(cmd.OutOrStdout(), renderStats(s, statsWidth))
		return nil
	},
}

func renderStats(s stats.Snapshot, chartWidth int) string {
	bold := color.New(color.Bold)
	usage := func(u *stats.Usage) string {
		if u == nil {
			return "none"
		}
		return fmt.Sprintf("%s (%d)", u.Category.Name, u.Count)
	}

	summary := uitable.New()
	summary.Separator = "  "
	summary.AddRow(bold.Sprint("Total"), s.Total)
	summary.AddRow(bold.Sprint("Last 7 days"), s.Last7Days)
	summary.AddRow(bold.Sprint("Last 30 days"), s.Last30Days)
	summary.AddRow(bold.Sprint("Most used"), usage(s.MostUsed))
	summary.AddRow(bold.Sprint("Least used"), usage(s.LeastUsed))

	var b strings.Builder
	b.WriteString(summary.String())
	b.WriteString("\n\n")

	if len(s.Rows) == 0 {
		b.WriteString("No categories yet.\n")
		return b.String()
	}

	chart := uitable.New()
	chart.Separator = "  "
	for _, r := range s.Rows {
		n := int(math.Round(float64(r.Width) / 100 * float64(chartWidth)))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Category.Color)).Render(strings.Repeat("█", n))
		chart.AddRow(r.Category.Name, bar, r.Count)
	}
	b.WriteString(chart.String())
	b.WriteString("\n")
	return b.String()
}

func init() {
	statsCmd.Flags().StringVar(&statsNow, "now", "", "Compute the 7/30 day windows as of this RFC3339 time")
	statsCmd.Flags().IntVar(&statsWidth, "width", 40, "Chart width in cells")
}

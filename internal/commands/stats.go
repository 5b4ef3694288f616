package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/sadopc/deen/internal/ledger"
)

type statsJSON struct {
	ledger.Stats
	FirstUseDate string           `json:"first_use_date,omitempty"`
	Details      []ledger.Counter `json:"counter_details"`
}

func addStats(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show today's progress, streaks and lifetime totals.",
		Example: `
deen stats
deen stats --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			defer rt.Close()

			snap := rt.tracker.Snapshot()
			stats := rt.tracker.Stats()
			out := cmd.OutOrStdout()

			if oo.JSON {
				b, err := json.Marshal(statsJSON{Stats: stats, FirstUseDate: snap.FirstUseDate, Details: snap.Counters})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			done := color.New(color.FgGreen)
			tbl := uitable.New()
			tbl.AddRow("ID", "NAME", "TODAY", "STREAK", "DAYS", "ALL TIME")
			for _, c := range snap.Counters {
				today := fmt.Sprintf("%d/%d", c.Current, c.Target)
				if c.Completed() {
					today = done.Sprint(today)
				}
				tbl.AddRow(c.ID, c.Name, today, c.Streak, c.TotalCompletedDays, c.AllTimeCount)
			}
			fmt.Fprintln(out, tbl)

			bold := color.New(color.Bold)
			summary := uitable.New()
			summary.AddRow(bold.Sprint("Today"), fmt.Sprintf("%d (%d/%d complete)", stats.TotalToday, stats.CompletedToday, stats.Counters))
			summary.AddRow(bold.Sprint("Streak"), stats.CurrentStreak)
			summary.AddRow(bold.Sprint("All time"), stats.TotalAllTime)
			summary.AddRow(bold.Sprint("Daily average"), stats.AverageDaily)
			fmt.Fprintln(out)
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

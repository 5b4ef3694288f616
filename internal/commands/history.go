package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

func addHistory(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	days := 7

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show daily totals for recent days, today included.",
		Example: `
deen history
deen history --days 30
`,
		ValidArgs: []string{},
		Args: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			defer rt.Close()

			now := rt.tracker.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			from := today.AddDate(0, 0, 1-days)
			entries, err := rt.store.DailyHistory(from, today)
			if err != nil {
				return oo.HandleError(err)
			}
			entries = append(entries, store.HistoryEntry{Date: ledger.DayKey(today), Total: rt.tracker.Stats().TotalToday})

			out := cmd.OutOrStdout()
			if oo.JSON {
				b, err := json.Marshal(entries)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			tbl := uitable.New()
			tbl.AddRow("DATE", "TOTAL")
			for _, e := range entries {
				tbl.AddRow(e.Date, e.Total)
			}
			fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/sadopc/deen/internal/export"
	"github.com/sadopc/deen/internal/ledger"
)

func addExport(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	format := "csv"
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write counters and daily history to a CSV or JSON file.",
		Example: `
deen export
deen export --format json --out ~/deen.json
`,
		ValidArgs: []string{},
		Args: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("--format must be csv or json, got %q", format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			defer rt.Close()

			history, err := rt.store.DailyHistory(time.Time{}, time.Time{})
			if err != nil {
				return oo.HandleError(err)
			}
			counters := rt.tracker.Snapshot().Counters
			if path == "" {
				path = fmt.Sprintf("deen-export-%s.%s", ledger.DayKey(rt.tracker.Now()), format)
			}

			if format == "json" {
				err = export.ToJSON(counters, history, path)
			} else {
				err = export.ToCSV(counters, history, path)
			}
			if err != nil {
				return oo.HandleError(err)
			}
			rt.log.Info("exported", "format", format, "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format. One of 'csv' or 'json'.")
	cmd.Flags().StringVarP(&path, "out", "o", "", "Destination file (default ./deen-export-<date>.<format>).")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

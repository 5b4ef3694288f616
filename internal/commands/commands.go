// Package commands holds the deen command line.
package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var verbose bool

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deen",
		Short: base.Wrap80("Prayer times and tasbih counters in the terminal."),
		Long: base.Wrap80("deen shows today's prayer schedule with a live countdown and keeps " +
			"daily tasbih counts, streaks and history. Run without a subcommand to open the UI."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also log to stderr at debug level.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addPrayer(topLevel)
	addCount(topLevel)
	addStats(topLevel)
	addHistory(topLevel)
	addReset(topLevel)
	addExport(topLevel)
	addVersion(topLevel)
}

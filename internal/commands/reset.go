package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var errNotConfirmed = errors.New("refusing to reset without --yes")

func addReset(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	var all, yes bool

	cmd := &cobra.Command{
		Use:   "reset [<id> | --all]",
		Short: base.Wrap80("Reset one counter's count for today, or erase all counts, streaks and history with --all."),
		Example: `
deen reset 1 --yes
deen reset --all --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return errors.New("give either a counter id or --all, not both")
			case !all && len(args) != 1:
				return errors.New("requires a counter id or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return oo.HandleError(errNotConfirmed)
			}
			rt, err := openRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			if all {
				if err := rt.tracker.FullReset(); err != nil {
					return oo.HandleError(err)
				}
				fmt.Fprintln(out, "All counts, streaks and history erased.")
				return nil
			}

			if err := rt.tracker.ResetCounter(args[0]); err != nil {
				return oo.HandleError(err)
			}
			c, _ := rt.tracker.Snapshot().Counter(args[0])
			fmt.Fprintf(out, "%s reset to 0/%d.\n", c.Name, c.Target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Erase every counter and the whole history.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

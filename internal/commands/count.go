package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/sadopc/deen/internal/ledger"
)

type countJSON struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Current int      `json:"current"`
	Target  int      `json:"target"`
	Cues    []string `json:"cues,omitempty"`
}

func addCount(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	n := 1

	cmd := &cobra.Command{
		Use:   "count <id>",
		Short: "Count recitations for a tasbih counter.",
		Example: `
deen count 1
deen count 4 -n 100
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a counter id")
			}
			if n < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", n)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			defer rt.Close()

			id := args[0]
			var cues []string
			for range n {
				cue, err := rt.tracker.Increment(id)
				if err != nil {
					return oo.HandleError(err)
				}
				if cue != ledger.CueNone {
					cues = append(cues, cue.String())
				}
			}

			c, _ := rt.tracker.Snapshot().Counter(id)
			out := cmd.OutOrStdout()
			if oo.JSON {
				b, err := json.Marshal(countJSON{ID: c.ID, Name: c.Name, Current: c.Current, Target: c.Target, Cues: cues})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			line := fmt.Sprintf("%s %d/%d", c.Name, c.Current, c.Target)
			if c.Completed() {
				line = color.New(color.FgGreen).Sprint(line + " ✓")
			}
			fmt.Fprintln(out, line)
			if slices.Contains(cues, ledger.CueComplete.String()) {
				fmt.Fprint(out, "\a")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "times", "n", 1, "Number of recitations to count.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

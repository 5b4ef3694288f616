package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/sadopc/deen/internal/config"
	"github.com/sadopc/deen/internal/schedule"
)

type prayerJSON struct {
	Now       string `json:"now"`
	Active    string `json:"active,omitempty"`
	Next      string `json:"next"`
	NextAt    string `json:"next_at"`
	Countdown string `json:"countdown"`
	Seconds   int    `json:"countdown_seconds"`
}

func addPrayer(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	var at string

	cmd := &cobra.Command{
		Use:   "prayer",
		Short: "Show today's prayer times, the current prayer and the countdown to the next.",
		Example: `
deen prayer
deen prayer --at 18:30
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			now := time.Now().In(cfg.Location)
			if at != "" {
				tod, err := schedule.ParseTimeOfDay(at)
				if err != nil {
					return oo.HandleError(err)
				}
				now = time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, cfg.Location)
			}

			st := schedule.Evaluate(cfg.Schedule, now)
			out := cmd.OutOrStdout()
			if oo.JSON {
				next := st.NextEvent()
				res := prayerJSON{
					Now:       now.Format("15:04:05"),
					Next:      next.Name,
					NextAt:    next.At.String(),
					Countdown: schedule.FormatCountdown(st.Countdown),
					Seconds:   int(st.Countdown.Seconds()),
				}
				if ev, ok := st.ActiveEvent(); ok {
					res.Active = ev.Name
				}
				b, err := json.Marshal(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			active := color.New(color.FgGreen, color.Bold)
			upcoming := color.New(color.FgYellow)
			tbl := uitable.New()
			tbl.AddRow("", "PRAYER", "TIME", "")
			for _, es := range st.Events {
				switch {
				case es.IsActive:
					tbl.AddRow(active.Sprint("●"), active.Sprint(es.Name), active.Sprint(es.At), es.Arabic)
				case es.IsNext:
					tbl.AddRow(upcoming.Sprint("→"), upcoming.Sprint(es.Name), upcoming.Sprint(es.At), es.Arabic)
				default:
					tbl.AddRow("", es.Name, es.At, es.Arabic)
				}
			}
			fmt.Fprintln(out, tbl)
			fmt.Fprintf(out, "\n%s in %s\n", st.NextEvent().Name, schedule.FormatCountdown(st.Countdown))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `Evaluate at this local time instead of now, example: --at="18:30".`)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

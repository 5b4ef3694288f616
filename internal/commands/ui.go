package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/deen/internal/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal user interface.",
		Example: `
deen ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI()
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI() error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	app := tui.NewApp(rt.tracker, rt.store, rt.cfg.Schedule)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		rt.log.Error("ui exited", "err", err)
		return err
	}
	return nil
}

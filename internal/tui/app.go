package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/deen/internal/export"
	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/schedule"
	"github.com/sadopc/deen/internal/store"
	"github.com/sadopc/deen/internal/tasbih"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tasbih.Tracker
	history HistorySource
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	prayer   prayerModel
	tasbih   tasbihModel
	reports  historyModel
	settings settingsModel

	help         help.Model
	tickInterval time.Duration
	status       string
	isErr        bool
}

// NewApp wires the views to tr. Ticks read the time from tr's clock.
func NewApp(tr *tasbih.Tracker, hist HistorySource, events []schedule.Event) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()
	return App{
		tracker:      tr,
		history:      hist,
		activeView:   viewPrayer,
		exportDir:    home,
		prayer:       newPrayerModel(tr, events),
		tasbih:       newTasbihModel(tr),
		reports:      newHistoryModel(tr, hist),
		settings:     newSettingsModel(tr),
		help:         h,
		tickInterval: time.Second,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.reports.refresh(),
		tickCmd(a.tickInterval),
	)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.prayer.setSize(a.width, contentHeight)
		a.tasbih.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, a.reports.refresh()

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewPrayer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasbih
			a.tasbih.refresh()
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHistory
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			a.settings.refresh()
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd(a.tickInterval))
		a.prayer, _ = a.prayer.update(msg)
		changed, err := a.tracker.Tick()
		if err != nil {
			cmds = append(cmds, func() tea.Msg { return errStatus("Save failed", err) })
		}
		if changed {
			cmds = append(cmds,
				func() tea.Msg { return statusMsg{text: "New day started"} },
				func() tea.Msg { return ledgerChangedMsg{} },
			)
		}
		return a, tea.Batch(cmds...)

	case ledgerChangedMsg:
		// Every view mirrors the ledger, not only the visible one.
		var cmd tea.Cmd
		a.tasbih, _ = a.tasbih.update(msg)
		a.settings, _ = a.settings.update(msg)
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case historyDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewPrayer:
		a.prayer, cmd = a.prayer.update(msg)
	case viewTasbih:
		a.tasbih, cmd = a.tasbih.update(msg)
	case viewHistory:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

func (a *App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTasbih:
		a.tasbih.refresh()
	case viewHistory:
		return a.reports.refresh()
	case viewSettings:
		a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewPrayer:
		content = a.prayer.view()
	case viewTasbih:
		content = a.tasbih.view()
	case viewHistory:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("deen")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Next prayer indicator
	next := a.prayer.status.NextEvent()
	prayerInfo := ""
	if next.Name != "" {
		prayerInfo = warningStyle.Render(fmt.Sprintf(" %s in %s", next.Name, schedule.FormatCountdown(a.prayer.status.Countdown)))
	}

	left := footerStyle.Render(helpView)
	right := prayerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

type exportFormat struct {
	label string
	ext   string
	write func([]ledger.Counter, []store.HistoryEntry, string) error
}

var exportFormats = []exportFormat{
	{"CSV", "csv", export.ToCSV},
	{"JSON", "json", export.ToJSON},
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export counters and history"), ""}
	for i, f := range exportFormats {
		line := normalItemStyle.Render("  " + f.label)
		if i == a.exportCursor {
			line = selectedItemStyle.Render("> " + f.label)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel  → "+a.exportDir))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		a.exportCursor = max(0, a.exportCursor-1)
	case key.Matches(msg, keys.Down):
		a.exportCursor = min(len(exportFormats)-1, a.exportCursor+1)
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the full history, not only the visible page.
func (a App) doExport(f exportFormat) tea.Cmd {
	return func() tea.Msg {
		history, err := a.history.DailyHistory(time.Time{}, time.Time{})
		if err != nil {
			return errStatus("Export", err)
		}
		name := fmt.Sprintf("deen-export-%s.%s", ledger.DayKey(a.tracker.Now()), f.ext)
		path := filepath.Join(a.exportDir, name)
		if err := f.write(a.tracker.Snapshot().Counters, history, path); err != nil {
			return errStatus(f.label+" export", err)
		}
		return exportDoneMsg{path: path}
	}
}

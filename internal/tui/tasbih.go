package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/tasbih"
)

type tasbihModel struct {
	tracker *tasbih.Tracker
	width   int
	height  int

	counters []ledger.Counter
	stats    ledger.Stats
	cursor   int
}

func newTasbihModel(tr *tasbih.Tracker) tasbihModel {
	m := tasbihModel{tracker: tr}
	m.refresh()
	return m
}

func (m *tasbihModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *tasbihModel) refresh() {
	m.counters = m.tracker.Snapshot().Counters
	m.stats = m.tracker.Stats()
	if m.cursor >= len(m.counters) {
		m.cursor = max(0, len(m.counters)-1)
	}
}

func (m tasbihModel) selected() (ledger.Counter, bool) {
	if m.cursor < 0 || m.cursor >= len(m.counters) {
		return ledger.Counter{}, false
	}
	return m.counters[m.cursor], true
}

func (m tasbihModel) update(msg tea.Msg) (tasbihModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.counters)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Count), key.Matches(msg, keys.Enter):
			return m.increment()
		case key.Matches(msg, keys.Reset):
			return m.reset()
		}
	}
	return m, nil
}

func (m tasbihModel) increment() (tasbihModel, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}
	cue, err := m.tracker.Increment(c.ID)
	m.refresh()
	if err != nil {
		return m, func() tea.Msg { return errStatus("Save failed", err) }
	}
	if cue == ledger.CueNone {
		return m, nil
	}
	c, _ = m.selected()
	text := cueStatus(c, cue)
	status := func() tea.Msg { return statusMsg{text: text} }
	if cue == ledger.CueComplete {
		return m, tea.Batch(status, ringBell)
	}
	return m, status
}

func (m tasbihModel) reset() (tasbihModel, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}
	err := m.tracker.ResetCounter(c.ID)
	m.refresh()
	if err != nil {
		return m, func() tea.Msg { return errStatus("Reset failed", err) }
	}
	return m, func() tea.Msg { return statusMsg{text: c.Name + " reset"} }
}

func (m tasbihModel) view() string {
	w := m.width - 4
	barWidth := max(10, min(40, w-48))

	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Tasbih"),
		mutedStyle.Render(fmt.Sprintf("%d today · %d/%d complete · streak %d",
			m.stats.TotalToday, m.stats.CompletedToday, m.stats.Counters, m.stats.CurrentStreak)),
	)

	rows := []string{header, ""}
	for i, c := range m.counters {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := " "
		if c.Completed() {
			check = successStyle.Render("✓")
		}
		name := style.Render(fmt.Sprintf("%s%-20s", cursor, c.Name))
		count := fmt.Sprintf("%4d/%-4d", c.Current, c.Target)
		rows = append(rows, fmt.Sprintf("%s %s %s %s", name, progressBar(c.Current, c.Target, barWidth), count, check))
		if c.Arabic != "" {
			rows = append(rows, "    "+arabicStyle.Render(c.Arabic))
		}
	}

	if c, ok := m.selected(); ok {
		rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("  streak %d · %d days completed · %d all time",
			c.Streak, c.TotalCompletedDays, c.AllTimeCount)))
	}
	rows = append(rows, "", mutedStyle.Render("  space/enter: count  r: reset  ↑/↓: select"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n")))
}

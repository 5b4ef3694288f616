package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
	"github.com/sadopc/deen/internal/tasbih"
)

const historyPageDays = 7

type historyModel struct {
	tracker *tasbih.Tracker
	source  HistorySource
	width   int
	height  int

	entries []store.HistoryEntry
	stats   ledger.Stats
	offset  int // 7-day pages back from today (0 = current)

	chart barchart.Model
}

func newHistoryModel(tr *tasbih.Tracker, src HistorySource) historyModel {
	return historyModel{
		tracker: tr,
		source:  src,
		chart:   barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

type historyDataMsg struct {
	entries []store.HistoryEntry
	err     error
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := h.dateRange()
		entries, err := h.source.DailyHistory(from, to)
		return historyDataMsg{entries: entries, err: err}
	}
}

// dateRange covers the 7 days ending today, shifted back by offset pages.
func (h historyModel) dateRange() (time.Time, time.Time) {
	now := h.tracker.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-historyPageDays*h.offset)
	return end.AddDate(0, 0, -historyPageDays), end
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		if msg.err != nil {
			return h, func() tea.Msg { return errStatus("History", msg.err) }
		}
		h.entries = msg.entries
		h.stats = h.tracker.Stats()
		h.buildChart()
		return h, nil

	case ledgerChangedMsg:
		return h, h.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		}
	}
	return h, nil
}

// totals maps each day in range to its total. Today is not archived yet, so
// its bar shows the live count.
func (h historyModel) totals() map[string]int {
	out := make(map[string]int, len(h.entries)+1)
	for _, e := range h.entries {
		out[e.Date] = e.Total
	}
	if h.offset == 0 {
		out[ledger.DayKey(h.tracker.Now())] = h.stats.TotalToday
	}
	return out
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	totals := h.totals()
	from, to := h.dateRange()
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  "total",
				Value: float64(totals[ledger.DayKey(d)]),
				Style: barStyle,
			}},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("History"), "  ", dateLabel)

	nav := mutedStyle.Render("  ←/→: older/newer week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", h.renderStats(), "", h.renderTable(w), "", nav,
		),
	)
}

func (h historyModel) renderStats() string {
	s := h.stats
	return fmt.Sprintf("  %s %d   %s %d   %s %d   %s %d",
		mutedStyle.Render("today"), s.TotalToday,
		mutedStyle.Render("streak"), s.CurrentStreak,
		mutedStyle.Render("all time"), s.TotalAllTime,
		mutedStyle.Render("daily avg"), s.AverageDaily,
	)
}

func (h historyModel) renderTable(w int) string {
	if len(h.entries) == 0 {
		return mutedStyle.Render("  No archived days in this period")
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-12s %8s", "Date", "Total")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 21))),
	}
	for _, e := range h.entries {
		rows = append(rows, fmt.Sprintf("  %-12s %8d", e.Date, e.Total))
	}
	return strings.Join(rows, "\n")
}

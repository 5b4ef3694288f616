package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/deen/internal/clock"
	"github.com/sadopc/deen/internal/schedule"
)

type prayerModel struct {
	clock  clock.Clock
	events []schedule.Event
	width  int
	height int

	now    time.Time
	status schedule.Status
}

func newPrayerModel(c clock.Clock, events []schedule.Event) prayerModel {
	p := prayerModel{clock: c, events: events}
	p.refresh()
	return p
}

func (p *prayerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *prayerModel) refresh() {
	p.now = p.clock.Now()
	p.status = schedule.Evaluate(p.events, p.now)
}

func (p prayerModel) update(msg tea.Msg) (prayerModel, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		p.refresh()
	}
	return p, nil
}

func (p prayerModel) view() string {
	if p.width < 20 {
		return "Terminal too small"
	}
	w := p.width - 4
	return lipgloss.JoinVertical(lipgloss.Left, p.renderClockPanel(w), p.renderSchedulePanel(w))
}

func (p prayerModel) renderClockPanel(w int) string {
	clockLine := clockStyle.Width(w - 6).Render(formatClock(p.now))

	current := mutedStyle.Render("No prayer time yet today")
	if ev, ok := p.status.ActiveEvent(); ok {
		current = "Now  " + highlightStyle.Bold(true).Render(ev.Name) + "  " + arabicStyle.Render(ev.Arabic)
	}

	next := p.status.NextEvent()
	nextLine := fmt.Sprintf("Next %s at %s", titleStyle.Render(next.Name), next.At)
	countdown := countdownStyle.Width(w - 6).Render(schedule.FormatCountdown(p.status.Countdown))

	content := lipgloss.JoinVertical(lipgloss.Center,
		clockLine,
		current,
		"",
		nextLine,
		countdown,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (p prayerModel) renderSchedulePanel(w int) string {
	rows := []string{titleStyle.Render("Today"), ""}
	for _, es := range p.status.Events {
		marker := "  "
		style := normalItemStyle
		switch {
		case es.IsActive:
			marker = "● "
			style = selectedItemStyle
		case es.IsNext:
			marker = "→ "
			style = accentStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-10s %s", marker, es.Name, es.At))+"  "+arabicStyle.Render(es.Arabic))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/tasbih"
)

type formKind int

const (
	formNone formKind = iota
	formTargets
	formReset
)

type settingsModel struct {
	tracker *tasbih.Tracker
	width   int
	height  int

	snapshot   ledger.State
	formActive bool
	kind       formKind
	form       *huh.Form

	// Form values live behind pointers so they survive value copies.
	targets      []string
	confirmReset *bool
}

func newSettingsModel(tr *tasbih.Tracker) settingsModel {
	confirm := false
	s := settingsModel{tracker: tr, confirmReset: &confirm}
	s.refresh()
	return s
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) refresh() {
	s.snapshot = s.tracker.Snapshot()
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case ledgerChangedMsg:
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showTargetsForm()
		case key.Matches(msg, keys.FullReset):
			return s.showResetForm()
		}
	}
	return s, nil
}

func validateTarget(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number above zero")
	}
	return nil
}

func (s settingsModel) showTargetsForm() (settingsModel, tea.Cmd) {
	s.refresh()
	counters := s.snapshot.Counters
	s.targets = make([]string, len(counters))

	fields := make([]huh.Field, 0, len(counters))
	for i, c := range counters {
		s.targets[i] = strconv.Itoa(c.Target)
		fields = append(fields, huh.NewInput().
			Title(c.Name).
			Description(c.Arabic).
			Validate(validateTarget).
			Value(&s.targets[i]))
	}

	s.form = huh.NewForm(
		huh.NewGroup(fields...).Title("Daily targets"),
	).WithShowHelp(true).WithShowErrors(true)

	s.kind = formTargets
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*s.confirmReset = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Erase all counts, streaks and history?").
				Affirmative("Erase").
				Negative("Cancel").
				Value(s.confirmReset),
		),
	).WithShowHelp(true)

	s.kind = formReset
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) closeForm() settingsModel {
	s.formActive = false
	s.form = nil
	s.kind = formNone
	return s
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			return s.closeForm(), nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		kind := s.kind
		s = s.closeForm()
		var err error
		text := "Targets saved"
		if kind == formTargets {
			err = s.saveTargets()
		} else if *s.confirmReset {
			err = s.tracker.FullReset()
			text = "All progress erased"
		} else {
			text = "Reset cancelled"
		}
		s.refresh()
		if err != nil {
			return s, func() tea.Msg { return errStatus("Settings", err) }
		}
		return s, tea.Batch(
			func() tea.Msg { return statusMsg{text: text} },
			func() tea.Msg { return ledgerChangedMsg{} },
		)
	case huh.StateAborted:
		return s.closeForm(), nil
	}

	return s, cmd
}

func (s settingsModel) saveTargets() error {
	for i, c := range s.snapshot.Counters {
		if i >= len(s.targets) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(s.targets[i]))
		if err != nil || n == c.Target {
			continue
		}
		if err := s.tracker.SetTarget(c.ID, n); err != nil {
			return err
		}
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	for _, c := range s.snapshot.Counters {
		label := lipgloss.NewStyle().Width(24).Render(c.Name)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(fmt.Sprintf("target %d", c.Target))))
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("Tracking since"), orDash(s.snapshot.FirstUseDate)))
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("Current day"), orDash(s.snapshot.LastResetDate)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit targets, R to erase all progress"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

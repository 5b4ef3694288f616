package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewPrayer viewState = iota
	viewTasbih
	viewHistory
	viewSettings
)

var viewNames = []string{"Prayer", "Tasbih", "History", "Settings"}

// HistorySource serves archived day totals for the history view and export.
type HistorySource interface {
	DailyHistory(from, to time.Time) ([]store.HistoryEntry, error)
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// ledgerChangedMsg tells views to re-read the tracker.
type ledgerChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

// bell receives the BEL written on completion. It stays out of rendered
// text so lipgloss width math is not thrown off.
var bell io.Writer = os.Stdout

func ringBell() tea.Msg {
	fmt.Fprint(bell, "\a")
	return nil
}

// cueStatus turns an increment cue into a status line.
func cueStatus(c ledger.Counter, cue ledger.Cue) string {
	switch cue {
	case ledger.CueComplete:
		return fmt.Sprintf("%s complete! %d/%d", c.Name, c.Current, c.Target)
	case ledger.CueMilestone:
		return fmt.Sprintf("%s %d", c.Name, c.Current)
	}
	return ""
}

// progressBar renders a fixed-width bar for current/target.
func progressBar(current, target, width int) string {
	if width < 1 || target <= 0 {
		return ""
	}
	filled := min(width, current*width/target)
	bar := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)
	if current >= target {
		return successStyle.Render(bar)
	}
	return accentStyle.Render(bar) + mutedStyle.Render(rest)
}

func formatClock(t time.Time) string {
	return t.Format("15:04:05")
}

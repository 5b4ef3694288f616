package tui

import "github.com/charmbracelet/lipgloss"

// Emerald and gold on a dark background.
var (
	colorPrimary = lipgloss.Color("#10B981")
	colorGold    = lipgloss.Color("#F59E0B")
	colorSand    = lipgloss.Color("#E7D7B1")
	colorDim     = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")
	colorDone    = lipgloss.Color("#22C55E")
	colorAlert   = lipgloss.Color("#EF4444")
	colorSky     = lipgloss.Color("#60A5FA")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bordered(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(1, 2)
}

var (
	activeTabStyle = fg(colorPrimary).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorDim).Padding(0, 2)

	panelStyle       = bordered(colorBorder)
	activePanelStyle = bordered(colorPrimary)

	clockStyle     = fg(colorPrimary).Bold(true).Align(lipgloss.Center)
	countdownStyle = fg(colorGold).Bold(true).Align(lipgloss.Center)

	titleStyle     = fg(colorSand).Bold(true)
	arabicStyle    = fg(colorSky)
	accentStyle    = fg(colorGold)
	successStyle   = fg(colorDone)
	warningStyle   = fg(colorGold).Italic(true)
	errorStyle     = fg(colorAlert)
	mutedStyle     = fg(colorDim)
	highlightStyle = fg(colorSky).Bold(true)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorDim).Padding(0, 1)

	selectedItemStyle = fg(colorPrimary).Bold(true)
	normalItemStyle   = fg(colorSand)
)

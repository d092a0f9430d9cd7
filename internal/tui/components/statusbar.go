package components

import (
	"strings"

	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// a short status message on the right. A warning message is highlighted.
func RenderStatusBar(width int, hints, status string, warn bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if warn {
		statusStyle = lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)
	}

	left := base.Render(" " + hints)
	right := ""
	if status != "" {
		right = statusStyle.Render(status + " ")
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + base.Render(strings.Repeat(" ", gap)) + right

	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}

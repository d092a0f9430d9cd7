package components

import (
	"fmt"

	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForShare returns the bar color for a contribution that uses pct of
// the available savings capacity. Saving most of the capacity is good;
// a full bar means the contribution is capped.
func ColorForShare(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.999:
		return t.Warn
	case pct >= 0.5:
		return t.Gain
	case pct > 0:
		return t.Accent
	default:
		return t.TextDim
	}
}

// CapacityBar renders a labeled bar showing how much of the savings
// capacity the contribution uses.
func CapacityBar(label string, contribution, capacity float64, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if capacity > 0 {
		pct = min(max(contribution/capacity, 0), 1)
	}
	color := ColorForShare(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.SurfaceHover)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	if capacity <= 0 {
		pctStr = " n/a"
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space +
		bar.ViewAs(pct) +
		space +
		pctStyle.Render(pctStr)
}

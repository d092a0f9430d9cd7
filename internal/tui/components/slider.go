package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Slider describes one control row.
type Slider struct {
	Label    string
	Value    string  // formatted value
	Pos      float64 // knob position in [0,1]; NaN hides the track
	Selected bool
	Capped   bool // value sits on a dynamic ceiling
}

// SliderPos maps v onto [lo, hi]. Unbounded ranges return NaN.
func SliderPos(v, lo, hi float64) float64 {
	if math.IsInf(hi, 1) {
		return math.NaN()
	}
	if hi <= lo {
		return 0
	}
	return min(max((v-lo)/(hi-lo), 0), 1)
}

// RenderSlider renders a slider row exactly width cells wide:
// marker, label column, track and the value right-aligned.
func RenderSlider(s Slider, labelW, valueW, width int) string {
	t := theme.Active

	bg := t.Surface
	if s.Selected {
		bg = t.SurfaceHover
	}
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border).Background(bg)
	fillStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(bg)
	knobStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg).Bold(true)
	pad := lipgloss.NewStyle().Background(bg)

	if s.Selected {
		labelStyle = labelStyle.Foreground(t.Accent).Bold(true)
		valueStyle = valueStyle.Bold(true)
	}
	if s.Capped {
		valueStyle = valueStyle.Foreground(t.Warn)
	}

	marker := "  "
	if s.Selected {
		marker = "▸ "
	}

	var b strings.Builder
	b.WriteString(markerStyle.Render(marker))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, s.Label)))

	trackW := width - 2 - labelW - valueW - 2
	if trackW >= 6 {
		b.WriteString(pad.Render(" "))
		if math.IsNaN(s.Pos) {
			b.WriteString(pad.Render(strings.Repeat(" ", trackW)))
		} else {
			knob := int(math.Round(s.Pos * float64(trackW-1)))
			b.WriteString(fillStyle.Render(strings.Repeat("━", knob)))
			b.WriteString(knobStyle.Render("●"))
			b.WriteString(trackStyle.Render(strings.Repeat("─", trackW-knob-1)))
		}
		b.WriteString(pad.Render(" "))
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, s.Value)))

	row := b.String()
	if gap := width - lipgloss.Width(row); gap > 0 {
		row += pad.Render(strings.Repeat(" ", gap))
	}
	return row
}

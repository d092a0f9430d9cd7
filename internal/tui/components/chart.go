package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	fillBlocks  = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// yScale lays out a y axis of nice round ticks over [0, peak] in height rows.
type yScale struct {
	step     float64
	ceiling  float64
	rows     int // chart rows, a multiple of the tick count
	perTick  int
	labelW   int
	tickRows map[int]string
}

func newYScale(peak float64, height int) yScale {
	if peak <= 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	intervals := max(int(math.Round(ceiling/step)), 1)
	perTick := max(height/intervals, 2)

	s := yScale{
		step:     step,
		ceiling:  ceiling,
		rows:     perTick * intervals,
		perTick:  perTick,
		labelW:   max(len(formatChartLabel(ceiling))+1, 4),
		tickRows: make(map[int]string, intervals),
	}
	for i := 1; i <= intervals; i++ {
		s.tickRows[i*perTick] = formatChartLabel(step * float64(i))
	}
	return s
}

// bounds returns the value range covered by chart row (1 = bottom).
func (s yScale) bounds(row int) (lo, hi float64) {
	return s.ceiling * float64(row-1) / float64(s.rows), s.ceiling * float64(row) / float64(s.rows)
}

// cell picks the fill glyph for value v in a row spanning [lo, hi].
func cell(v, lo, hi float64) (rune, bool) {
	switch {
	case v >= hi:
		return '█', true
	case v > lo:
		idx := int((v - lo) / (hi - lo) * 8)
		return fillBlocks[min(max(idx, 1), 8)], true
	default:
		return ' ', false
	}
}

// LineChart renders balance as a filled area over time. Columns whose fill
// lies under baseline (the money paid in) use the deposit color, the rest
// the gain color, so the split between contributions and growth is visible.
// baseline may be nil. years labels the x axis; 0 disables the labels.
func LineChart(balance, baseline []float64, years, width, height int) string {
	if len(balance) == 0 {
		return ""
	}
	t := theme.Active
	if width < 20 || height < 3 {
		return Sparkline(balance, t.Gain)
	}

	peak := 0.0
	for _, v := range balance {
		peak = max(peak, v)
	}
	scale := newYScale(peak, height)

	cols := max(width-scale.labelW-1, 5)
	bal := interpolate(balance, cols)
	var base []float64
	if len(baseline) > 0 {
		base = interpolate(baseline, cols)
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	styles := map[lipgloss.Color]lipgloss.Style{}
	styleFor := func(c lipgloss.Color) lipgloss.Style {
		st, ok := styles[c]
		if !ok {
			st = lipgloss.NewStyle().Foreground(c).Background(t.Surface)
			styles[c] = st
		}
		return st
	}

	var b strings.Builder
	for row := scale.rows; row >= 1; row-- {
		lo, hi := scale.bounds(row)
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", scale.labelW, scale.tickRows[row])))

		// Runs of identical color are rendered together.
		var run strings.Builder
		runColor := lipgloss.Color("")
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(blank.Render(run.String()))
			} else {
				b.WriteString(styleFor(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for x, v := range bal {
			glyph, filled := cell(v, lo, hi)
			color := lipgloss.Color("")
			if filled {
				switch {
				case base != nil && hi <= base[x]:
					color = t.Deposit
				case v < hi:
					color = t.GainBright
				default:
					color = t.Gain
				}
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(glyph)
		}
		flush()
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", scale.labelW, "0", strings.Repeat("─", cols))))

	if years > 0 {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", scale.labelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(yearAxis(years, cols), " ")))
	}
	return b.String()
}

// yearAxis places "Ny" labels under the columns that fall on year ticks.
func yearAxis(years, cols int) string {
	buf := []byte(strings.Repeat(" ", cols))
	step := max(1, int(chartTickStep(float64(years))))
	for years/step > cols/6 {
		step *= 2
	}

	lastEnd := -1
	put := func(y int) {
		lbl := fmt.Sprintf("%dy", y)
		pos := 0
		if years > 0 {
			pos = int(math.Round(float64(y) / float64(years) * float64(cols-1)))
		}
		if pos+len(lbl) > cols {
			pos = cols - len(lbl)
		}
		if pos <= lastEnd || pos < 0 {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	for y := 0; y < years; y += step {
		put(y)
	}
	put(years)
	return string(buf)
}

// interpolate resamples values to exactly n points by linear interpolation.
func interpolate(values []float64, n int) []float64 {
	out := make([]float64, n)
	if len(values) == 1 || n == 1 {
		for i := range out {
			out[i] = values[len(values)-1]
		}
		return out
	}
	last := float64(len(values) - 1)
	for i := range out {
		pos := float64(i) / float64(n-1) * last
		lo := int(pos)
		if lo >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = values[lo] + (values[lo+1]-values[lo])*frac
	}
	return out
}

// BarChart renders one bar per value with an optional label under each bar.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	scale := newYScale(peak, height)
	chartW := max(width-scale.labelW-1, 5)

	n := len(values)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		keep := max((chartW+1)/3, 2)
		idx := make([]int, keep)
		for i := range idx {
			idx[i] = i * (n - 1) / (keep - 1)
		}
		sampled := make([]float64, keep)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, keep)
		}
		for i, src := range idx {
			sampled[i] = values[src]
			if sampledLabels != nil {
				sampledLabels[i] = labels[src]
			}
		}
		values, labels, n, barW = sampled, sampledLabels, keep, 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := scale.rows; row >= 1; row-- {
		lo, hi := scale.bounds(row)
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", scale.labelW, scale.tickRows[row])))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			glyph, filled := cell(v, lo, hi)
			if filled {
				b.WriteString(barStyle.Render(strings.Repeat(string(glyph), barW)))
			} else {
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", scale.labelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		buf := []byte(strings.Repeat(" ", axisLen))
		labelStep := max(1, (n*6)/(axisLen+1))
		lastEnd := -1
		for i := 0; i < n; i += labelStep {
			pos := i * (barW + gap)
			lbl := labels[i]
			if pos <= lastEnd || pos+len(lbl) > axisLen {
				continue
			}
			copy(buf[pos:], lbl)
			lastEnd = pos + len(lbl)
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", scale.labelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}
	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	unit := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e9:
		return unit(1e9, "B")
	case v >= 1e6:
		return unit(1e6, "M")
	case v >= 1e3:
		return unit(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderChartTab draws the trajectory over the whole content area, with
// per-year growth bars underneath when there is room.
func (a App) renderChartTab(cw, contentH int) string {
	t := theme.Active
	p := a.plan
	innerW := components.CardInnerWidth(cw)

	legendStyle := lipgloss.NewStyle().Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	legend := lipgloss.NewStyle().Foreground(t.Deposit).Background(t.Surface).Render("█") +
		dimStyle.Render(" paid in   ") +
		lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface).Render("█") +
		dimStyle.Render(" growth   ") +
		legendStyle.Render(a.chartFigures())

	showBars := contentH >= 30 && len(a.schedule) > 1
	chartH := contentH - 8
	if showBars {
		chartH = contentH*3/5 - 6
	}

	var body strings.Builder
	body.WriteString(components.LineChart(p.Result.SavingsOverTime, projection.Contributed(p),
		p.Inputs.Savings.YearsToRetirement, innerW, max(chartH, 4)))
	body.WriteString("\n\n")
	body.WriteString(legend)

	title := fmt.Sprintf("Savings over time  %s", cli.FormatMonths(p.TotalMonths))
	out := components.ContentCard(title, body.String(), cw, false)
	if !showBars {
		return out
	}

	growth := make([]float64, len(a.schedule))
	labels := make([]string, len(a.schedule))
	for i, row := range a.schedule {
		growth[i] = max(row.Growth, 0)
		labels[i] = strconv.Itoa(row.Year)
	}
	barH := max(contentH-lipgloss.Height(out)-5, 3)
	bars := components.BarChart(growth, labels, t.Gain, innerW, barH)
	return out + "\n" + components.ContentCard("Growth per year", bars, cw, false)
}

func (a App) chartFigures() string {
	t := theme.Active
	p := a.plan
	contributed, growth := projection.Totals(a.schedule)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface).Bold(true)

	return labelStyle.Render("start ") + valueStyle.Render(cli.FormatMoneyCompact(p.Inputs.Savings.CurrentSavings)) +
		labelStyle.Render("  contributions ") + valueStyle.Render(cli.FormatMoneyCompact(contributed)) +
		labelStyle.Render("  growth ") + valueStyle.Render(cli.FormatMoneyCompact(growth)) +
		labelStyle.Render("  end ") + gainStyle.Render(cli.FormatMoney(p.Result.Final()))
}

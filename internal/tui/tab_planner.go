package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sliderLabelW = 21
	sliderValueW = 12
	bigStep      = 10
)

// plannerState tracks the planner tab state.
type plannerState struct {
	cursor  int
	editing bool
	input   textinput.Model
	err     string // last rejected entry
}

// parseAmount reads a user-typed number, tolerating currency symbols,
// thousands separators and a trailing percent sign.
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", "%", "", "_", "", " ", "").Replace(s)
	if clean == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// editText renders v as the starting text of the exact-value input.
func editText(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func (a *App) handlePlannerKey(key string) (bool, tea.Cmd) {
	c := model.Controls[a.planner.cursor]

	step := func(n float64) {
		a.planner.err = ""
		a.setControl(c, model.Value(a.inputs, c.Key)+n*c.Step)
	}

	switch key {
	case "j", "down":
		a.planner.cursor = min(a.planner.cursor+1, len(model.Controls)-1)
	case "k", "up":
		a.planner.cursor = max(a.planner.cursor-1, 0)
	case "h", "left":
		step(-1)
	case "l", "right":
		step(1)
	case "H":
		step(-bigStep)
	case "L":
		step(bigStep)
	case "0":
		a.planner.err = ""
		a.setControl(c, c.Default)
	case "enter":
		return true, a.plannerStartEdit()
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) plannerStartEdit() tea.Cmd {
	c := model.Controls[a.planner.cursor]

	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = sliderValueW + 4
	ti.Prompt = ""
	ti.SetValue(editText(model.Value(a.inputs, c.Key)))
	ti.CursorEnd()
	ti.Focus()

	a.planner.input = ti
	a.planner.editing = true
	a.planner.err = ""
	return ti.Cursor.BlinkCmd()
}

func (a App) updatePlannerInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		c := model.Controls[a.planner.cursor]
		a.planner.editing = false
		v, err := parseAmount(a.planner.input.Value())
		if err != nil {
			a.planner.err = err.Error()
			return a, nil
		}
		a.setControl(c, v)
		return a, nil
	case "esc":
		a.planner.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.planner.input, cmd = a.planner.input.Update(msg)
	return a, cmd
}

func (a App) renderPlannerTab(cw int) string {
	t := theme.Active
	p := a.plan

	capNote := "nothing left to save"
	if p.SavingsCapacity > 0 {
		capNote = cli.FormatPercent(p.SavingsCapacity/max(p.MonthlyIncome, 1)) + " of take-home"
	}
	capTone := t.TextPrimary
	if p.SavingsCapacity == 0 {
		capTone = t.Loss
	}

	metrics := []components.Metric{
		{Label: "Take-home", Value: cli.FormatMoney(p.MonthlyIncome), Note: "per month"},
		{Label: "Expenses", Value: cli.FormatMoney(p.TotalExpenses), Note: "per month"},
		{Label: "Capacity", Value: cli.FormatMoney(p.SavingsCapacity), Note: capNote, Tone: capTone},
		{Label: "Projected", Value: cli.FormatMoney(p.Result.FutureSavings), Note: "in " + cli.FormatMonths(p.TotalMonths), Tone: t.Gain},
	}

	var b strings.Builder
	b.WriteString(components.MetricRow(metrics, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Inputs", a.renderControls(components.CardInnerWidth(cw)), cw, true))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Trajectory", a.renderTrajectory(components.CardInnerWidth(cw), 8), cw, false))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard("Inputs", a.renderControls(components.CardInnerWidth(halves[0])), halves[0], true)
	right := components.ContentCard("Trajectory", a.renderTrajectory(components.CardInnerWidth(halves[1]), lipgloss.Height(left)-9), halves[1], false)
	b.WriteString(components.CardRow([]string{left, right}))
	return b.String()
}

// renderControls renders every control grouped by section.
func (a App) renderControls(innerW int) string {
	t := theme.Active
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	labelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)

	var b strings.Builder
	section := ""
	for i, c := range model.Controls {
		if c.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = c.Section
			b.WriteString(sectionStyle.Render(section))
			b.WriteString("\n")
		}

		if a.planner.editing && i == a.planner.cursor {
			row := markerStyle.Render("▸ ") +
				labelStyle.Render(fmt.Sprintf("%-*s", sliderLabelW, c.Label)) +
				a.planner.input.View()
			b.WriteString(lipgloss.PlaceHorizontal(innerW, lipgloss.Left, row,
				lipgloss.WithWhitespaceBackground(t.SurfaceHover)))
			b.WriteString("\n")
			continue
		}

		v := model.Value(a.inputs, c.Key)
		hi := c.Upper(a.plan.SavingsCapacity)
		if hi >= model.MaxMoney {
			hi = math.Inf(1) // a track this long would pin the knob at zero
		}
		b.WriteString(components.RenderSlider(components.Slider{
			Label:    c.Label,
			Value:    cli.FormatControl(c, v),
			Pos:      components.SliderPos(v, c.Min, hi),
			Selected: i == a.planner.cursor,
			Capped:   c.Key == model.KeyMonthlyContribution && a.capped,
		}, sliderLabelW, sliderValueW, innerW))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderTrajectory renders the compact chart, capacity usage and both
// end-of-horizon figures.
func (a App) renderTrajectory(innerW, chartH int) string {
	t := theme.Active
	p := a.plan
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.LineChart(p.Result.SavingsOverTime, projection.Contributed(p),
		p.Inputs.Savings.YearsToRetirement, innerW, max(chartH, 4)))
	b.WriteString("\n\n")
	b.WriteString(components.CapacityBar("Capacity used", p.Contribution, p.SavingsCapacity, 14, max(innerW-20, 4)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Monthly return")))
	b.WriteString(valueStyle.Render(cli.FormatRate(p.MonthlyReturn)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Trajectory end")))
	b.WriteString(valueStyle.Render(cli.FormatMoney(p.Result.Final())))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s below projected)", cli.FormatMoney(projection.Discrepancy(p)))))
	return b.String()
}

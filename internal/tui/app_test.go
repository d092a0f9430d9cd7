package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "config.toml"))
	cfg := config.DefaultConfig()
	a := NewApp(cfg, cfg.PlanInputs(), false)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func selectControl(a App, k model.Key) App {
	for i, c := range model.Controls {
		if c.Key == k {
			a.planner.cursor = i
		}
	}
	return a
}

func TestNewAppEvaluatesDefaults(t *testing.T) {
	a := newTestApp(t)

	assert.InDelta(t, 3333.33, a.plan.MonthlyIncome, 0.01)
	assert.InDelta(t, 1633.33, a.plan.SavingsCapacity, 0.01)
	assert.InDelta(t, 809433.19, a.plan.Result.FutureSavings, 0.01)
	assert.Len(t, a.schedule, 30)
	assert.False(t, a.capped)
}

func TestStepControls(t *testing.T) {
	a := newTestApp(t)

	a = selectControl(a, model.KeyTaxRate)
	a = press(a, "l", "l")
	assert.InDelta(t, 0.22, a.inputs.Income.TaxRate, 1e-9)

	a = press(a, "H")
	assert.InDelta(t, 0.12, a.inputs.Income.TaxRate, 1e-9)

	// Steps stop at the range bounds.
	a = press(a, "H", "H")
	assert.InDelta(t, 0.0, a.inputs.Income.TaxRate, 1e-9)

	a = press(a, "0")
	assert.InDelta(t, 0.20, a.inputs.Income.TaxRate, 1e-9)
	assert.Equal(t, projection.Evaluate(a.inputs).Result.FutureSavings, a.plan.Result.FutureSavings)
}

func TestCursorMovement(t *testing.T) {
	a := newTestApp(t)
	a = press(a, "k")
	assert.Equal(t, 0, a.planner.cursor)

	a = press(a, "j", "down", "j")
	assert.Equal(t, 3, a.planner.cursor)

	for range model.Controls {
		a = press(a, "j")
	}
	assert.Equal(t, len(model.Controls)-1, a.planner.cursor)
}

func TestContributionReclampedWhenCapacityShrinks(t *testing.T) {
	a := newTestApp(t)

	a = selectControl(a, model.KeyMonthlyContribution)
	a = press(a, "L", "L", "L") // ask for 2000, capacity is 1633.33
	assert.InDelta(t, a.plan.SavingsCapacity, a.inputs.Savings.MonthlyContribution, 1e-9)
	assert.True(t, a.capped)

	a = selectControl(a, model.KeyRent)
	a = press(a, "L", "L", "L") // rent 2500, capacity 133.33
	assert.InDelta(t, 133.33, a.plan.SavingsCapacity, 0.01)
	assert.InDelta(t, a.plan.SavingsCapacity, a.plan.Contribution, 1e-9)
	assert.InDelta(t, a.plan.Contribution, a.inputs.Savings.MonthlyContribution, 1e-9)

	// Capacity growing again does not restore the old request.
	a = press(a, "0")
	assert.InDelta(t, 133.33, a.plan.Contribution, 0.01)
	assert.False(t, a.capped)
}

func TestZeroCapacity(t *testing.T) {
	a := newTestApp(t)
	a = selectControl(a, model.KeyRent)
	a.setControl(model.Controls[a.planner.cursor], 5000)

	assert.Equal(t, 0.0, a.plan.SavingsCapacity)
	assert.Equal(t, 0.0, a.plan.Contribution)
	msg, warn := a.statusMessage()
	assert.True(t, warn)
	assert.Contains(t, msg, "take-home")
}

func TestExactValueEntry(t *testing.T) {
	a := newTestApp(t)
	a = selectControl(a, model.KeyAnnualSalary)

	a = press(a, "enter")
	require.True(t, a.planner.editing)
	assert.Equal(t, "50000", a.planner.input.Value())

	a.planner.input.SetValue("$72,000")
	a = press(a, "enter")
	assert.False(t, a.planner.editing)
	assert.InDelta(t, 72000.0, a.inputs.Income.AnnualSalary, 1e-9)

	a = press(a, "enter")
	a.planner.input.SetValue("lots")
	a = press(a, "enter")
	assert.InDelta(t, 72000.0, a.inputs.Income.AnnualSalary, 1e-9)
	assert.Contains(t, a.planner.err, "not a number")

	// Escape discards the edit.
	a = press(a, "enter")
	a.planner.input.SetValue("1")
	a = press(a, "esc")
	assert.InDelta(t, 72000.0, a.inputs.Income.AnnualSalary, 1e-9)
}

func TestExactValueIsClamped(t *testing.T) {
	a := newTestApp(t)
	a = selectControl(a, model.KeyYearsToRetirement)

	a = press(a, "enter")
	a.planner.input.SetValue("80")
	a = press(a, "enter")
	assert.Equal(t, 50, a.inputs.Savings.YearsToRetirement)
	assert.Equal(t, 600, a.plan.TotalMonths)
}

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]float64{
		"50000":    50000,
		"$50,000":  50000,
		" 8.5 % ":  8.5,
		"1_000.25": 1000.25,
		"-12":      -12,
	} {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	for _, in := range []string{"", "abc", "NaN", "inf"} {
		_, err := parseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestTabNavigation(t *testing.T) {
	a := newTestApp(t)

	a = press(a, "c")
	assert.Equal(t, tabChart, a.activeTab)
	a = press(a, "tab", "tab")
	assert.Equal(t, tabSettings, a.activeTab)
	a = press(a, "tab")
	assert.Equal(t, tabPlanner, a.activeTab)
	a = press(a, "x")
	assert.Equal(t, tabSettings, a.activeTab)
}

func TestScheduleScroll(t *testing.T) {
	a := newTestApp(t)
	a = press(a, "s", "j", "j")
	assert.Equal(t, 2, a.sched.offset)
	a = press(a, "G")
	assert.Equal(t, 29, a.sched.offset)
	a = press(a, "g", "k")
	assert.Equal(t, 0, a.sched.offset)

	// Shortening the horizon pulls the offset back in range.
	a = press(a, "G")
	a = selectControl(a, model.KeyYearsToRetirement)
	a.setControl(model.Controls[a.planner.cursor], 5)
	assert.Equal(t, 4, a.sched.offset)
}

func TestSettingsSaveAndReset(t *testing.T) {
	a := newTestApp(t)
	t.Cleanup(func() { theme.SetActive("flexoki-dark") })

	a = selectControl(a, model.KeyCurrentSavings)
	a = press(a, "L")
	assert.InDelta(t, 20000.0, a.inputs.Savings.CurrentSavings, 1e-9)

	a = press(a, "x", "j", "enter") // save as defaults
	require.NoError(t, a.settings.saveErr)
	assert.True(t, config.Exists())

	saved, err := config.Load()
	require.NoError(t, err)
	assert.InDelta(t, 20000.0, saved.Inputs.CurrentSavings, 1e-9)

	a = press(a, "p", "0", "x", "j", "enter") // reset inputs
	assert.InDelta(t, 20000.0, a.inputs.Savings.CurrentSavings, 1e-9)

	a = press(a, "g", "k", "k", "k", "l") // cycle theme
	assert.Equal(t, "catppuccin-mocha", a.cfg.Appearance.Theme)
	assert.Equal(t, "catppuccin-mocha", theme.Active.Name)
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg)
	assert.Equal(t, "50000", vals.Salary)
	assert.Equal(t, "20", vals.TaxRate)
	assert.Equal(t, "30", vals.Years)

	vals.Salary = "64,000"
	vals.TaxRate = "25%"
	vals.Years = "25"
	vals.Theme = "tokyo-night"
	require.NoError(t, vals.Apply(&cfg))

	in := cfg.PlanInputs()
	assert.InDelta(t, 64000.0, in.Income.AnnualSalary, 1e-9)
	assert.InDelta(t, 0.25, in.Income.TaxRate, 1e-9)
	assert.Equal(t, 25, in.Savings.YearsToRetirement)
	assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)

	before := cfg
	vals.Savings = "lots"
	assert.Error(t, vals.Apply(&cfg))
	assert.Equal(t, before, cfg)
}

func TestValidator(t *testing.T) {
	check := validator(model.KeyTaxRate)
	assert.NoError(t, check("35"))
	assert.Error(t, check("60"))
	assert.Error(t, check("x"))
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)

	for _, k := range []string{"p", "c", "s", "x"} {
		a = press(a, k)
		view := a.View()
		lines := strings.Split(view, "\n")
		assert.Len(t, lines, 45, "tab %s", k)
		assert.Contains(t, view, "Projected", "tab %s", k)
	}

	a = press(a, "?")
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a = press(a, "j")
	assert.False(t, a.showHelp)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, m.(App).View(), "too narrow")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

package tui

import (
	"fmt"
	"math"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form as typed.
type SetupValues struct {
	Salary  string
	TaxRate string // percent
	Savings string
	Years   string
	Theme   string
}

// SetupValuesFrom pre-fills the form with the configured defaults.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Salary:  editText(cfg.Inputs.AnnualSalary),
		TaxRate: editText(cfg.Inputs.TaxRatePct),
		Savings: editText(cfg.Inputs.CurrentSavings),
		Years:   fmt.Sprintf("%d", cfg.Inputs.YearsToRetirement),
		Theme:   cfg.Appearance.Theme,
	}
}

// validator checks a typed value against a control's static range.
func validator(k model.Key) func(string) error {
	c, _ := model.ControlByKey(k)
	return func(s string) error {
		v, err := parseAmount(s)
		if err != nil {
			return err
		}
		if v < c.Min || v > c.Max {
			return fmt.Errorf("%s must be between %g and %g", c.Label, c.Min, c.Max)
		}
		return nil
	}
}

// NewSetupForm builds the first-run questions. Answers are written to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to nestegg").
				Description("A few numbers to start your retirement plan.\nEverything can be changed later in the planner."),
			huh.NewInput().
				Title("Annual salary").
				Description("Before tax").
				Value(&vals.Salary).
				Validate(validator(model.KeyAnnualSalary)),
			huh.NewInput().
				Title("Tax rate (%)").
				Description("Flat rate applied to the salary, 0 to 50").
				Value(&vals.TaxRate).
				Validate(validator(model.KeyTaxRate)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current savings").
				Value(&vals.Savings).
				Validate(validator(model.KeyCurrentSavings)),
			huh.NewInput().
				Title("Years to retirement").
				Description("1 to 50").
				Value(&vals.Years).
				Validate(validator(model.KeyYearsToRetirement)),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply parses the answers into cfg. cfg is unchanged on error.
func (v SetupValues) Apply(cfg *config.Config) error {
	fields := []struct {
		key model.Key
		raw string
	}{
		{model.KeyAnnualSalary, v.Salary},
		{model.KeyTaxRate, v.TaxRate},
		{model.KeyCurrentSavings, v.Savings},
		{model.KeyYearsToRetirement, v.Years},
	}

	in := cfg.PlanInputs()
	for _, f := range fields {
		n, err := parseAmount(f.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		c, _ := model.ControlByKey(f.key)
		model.SetValue(&in, f.key, c.Clamp(n, math.Inf(1)))
	}

	cfg.SetInputs(in)
	if theme.Index(v.Theme) >= 0 {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}

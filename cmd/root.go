// Package cmd implements the nestegg CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/model"

	"github.com/spf13/cobra"
)

// inputFlags maps each root flag to the control it sets. Values are in
// control units: percents for rates, whole years for the horizon.
var inputFlags = []struct {
	name  string
	key   model.Key
	usage string
}{
	{"salary", model.KeyAnnualSalary, "Annual salary before tax"},
	{"tax-rate", model.KeyTaxRate, "Flat tax rate in percent (0-50)"},
	{"rent", model.KeyRent, "Monthly rent"},
	{"food", model.KeyFood, "Monthly food spend"},
	{"transport", model.KeyTransport, "Monthly transport spend"},
	{"savings", model.KeyCurrentSavings, "Current savings balance"},
	{"contribution", model.KeyMonthlyContribution, "Requested monthly contribution (capped at savings capacity)"},
	{"return", model.KeyAnnualReturn, "Expected annual return in percent (0-15)"},
	{"years", model.KeyYearsToRetirement, "Years to retirement (1-50)"},
}

var flagQuiet bool

var rootCmd = &cobra.Command{
	Use:   "nestegg",
	Short: "Retirement savings projection calculator",
	Long: "Project retirement savings from salary, tax, expenses and a monthly contribution.\n" +
		"Inputs start from the config file and can be overridden with flags.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	for _, f := range inputFlags {
		c, _ := model.ControlByKey(f.key)
		rootCmd.PersistentFlags().Float64(f.name, c.Default, f.usage)
	}
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

// loadConfigOrDefault loads the config file, falling back to defaults with a
// warning when it cannot be read.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  warning: %v (using defaults)\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// resolveInputs starts from the configured defaults and applies only the
// flags the user set, then clamps every control to its static range.
func resolveInputs(cmd *cobra.Command, cfg config.Config) (model.Inputs, error) {
	in := cfg.PlanInputs()
	for _, f := range inputFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return in, fmt.Errorf("--%s: %w", f.name, err)
		}
		model.SetValue(&in, f.key, v)
	}
	return model.Clamp(in), nil
}

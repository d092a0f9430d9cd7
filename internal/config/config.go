// Package config loads and saves the nestegg TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/nestegg/internal/model"
)

// EnvPath overrides the config file location when set.
const EnvPath = "NESTEGG_CONFIG"

// DefaultAddr is the default listen address for `nestegg serve`.
const DefaultAddr = "127.0.0.1:8790"

// Config holds all nestegg configuration.
type Config struct {
	Inputs     InputsConfig     `toml:"inputs"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// InputsConfig holds the starting value of every control.
// Rates are stored as percents, matching what the user sees.
type InputsConfig struct {
	AnnualSalary        float64 `toml:"annual_salary"`
	TaxRatePct          float64 `toml:"tax_rate_pct"`
	Rent                float64 `toml:"rent"`
	Food                float64 `toml:"food"`
	Transport           float64 `toml:"transport"`
	CurrentSavings      float64 `toml:"current_savings"`
	MonthlyContribution float64 `toml:"monthly_contribution"`
	AnnualReturnPct     float64 `toml:"annual_return_pct"`
	YearsToRetirement   int     `toml:"years_to_retirement"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetInputs(model.DefaultInputs())
	cfg.Appearance.Theme = "flexoki-dark"
	cfg.Server.Addr = DefaultAddr
	return cfg
}

// PlanInputs converts the stored values to clamped model inputs.
func (c Config) PlanInputs() model.Inputs {
	in := model.Inputs{
		Income: model.IncomeInputs{
			AnnualSalary: c.Inputs.AnnualSalary,
			TaxRate:      c.Inputs.TaxRatePct / 100,
		},
		Expenses: model.ExpenseInputs{
			Rent:      c.Inputs.Rent,
			Food:      c.Inputs.Food,
			Transport: c.Inputs.Transport,
		},
		Savings: model.SavingsInputs{
			CurrentSavings:      c.Inputs.CurrentSavings,
			MonthlyContribution: c.Inputs.MonthlyContribution,
			AnnualReturn:        c.Inputs.AnnualReturnPct / 100,
			YearsToRetirement:   c.Inputs.YearsToRetirement,
		},
	}
	return model.Clamp(in)
}

// SetInputs stores in as the configured starting values.
func (c *Config) SetInputs(in model.Inputs) {
	c.Inputs = InputsConfig{
		AnnualSalary:        in.Income.AnnualSalary,
		TaxRatePct:          model.Value(in, model.KeyTaxRate),
		Rent:                in.Expenses.Rent,
		Food:                in.Expenses.Food,
		Transport:           in.Expenses.Transport,
		CurrentSavings:      in.Savings.CurrentSavings,
		MonthlyContribution: in.Savings.MonthlyContribution,
		AnnualReturnPct:     model.Value(in, model.KeyAnnualReturn),
		YearsToRetirement:   in.Savings.YearsToRetirement,
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if p := os.Getenv(EnvPath); p != "" {
		return filepath.Dir(p)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nestegg")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nestegg")
}

// Path returns the full path to the config file.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	return cfg, nil
}

// LoadOrDefault loads config, returning defaults on error so callers can
// always start even if the file is corrupted.
func LoadOrDefault() Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

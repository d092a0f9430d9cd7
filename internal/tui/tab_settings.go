package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldSaveDefaults
	settingsFieldResetInputs
	settingsFieldSetup
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	saved   string // flash message after a successful action
	saveErr error  // non-nil if the last save failed
}

func (a *App) handleSettingsKey(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
	case "h", "left":
		if a.settings.cursor == settingsFieldTheme {
			a.cycleTheme(-1)
		}
	case "l", "right":
		if a.settings.cursor == settingsFieldTheme {
			a.cycleTheme(1)
		}
	case "enter":
		return true, a.settingsActivate()
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) settingsActivate() tea.Cmd {
	switch a.settings.cursor {
	case settingsFieldTheme:
		a.cycleTheme(1)
	case settingsFieldSaveDefaults:
		a.cfg.SetInputs(a.inputs)
		a.saveConfig("current inputs saved as defaults")
	case settingsFieldResetInputs:
		a.inputs = a.cfg.PlanInputs()
		a.recompute()
		a.settings.saveErr = nil
		a.settings.saved = "inputs reset to saved defaults"
	case settingsFieldSetup:
		a.setupVals = SetupValuesFrom(a.cfg)
		a.setupForm = NewSetupForm(&a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		a.needSetup = true
		return a.setupForm.Init()
	}
	return nil
}

func (a *App) cycleTheme(dir int) {
	next := theme.Next(a.cfg.Appearance.Theme, dir)
	a.cfg.Appearance.Theme = next.Name
	theme.SetActive(next.Name)
	a.saveConfig("theme set to " + next.Name)
}

// saveConfig persists the config and records the outcome for the status bar.
func (a *App) saveConfig(okMsg string) {
	a.settings.saveErr = config.Save(a.cfg)
	a.settings.saved = ""
	if a.settings.saveErr == nil {
		a.settings.saved = okMsg
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	swatchStyle := lipgloss.NewStyle().Background(t.Surface)

	swatch := ""
	for _, c := range []lipgloss.Color{t.Accent, t.Gain, t.Deposit, t.Warn, t.Loss} {
		swatch += lipgloss.NewStyle().Foreground(c).Background(t.Surface).Render("●")
	}

	fields := []struct{ label, value string }{
		{"Theme", "◂ " + a.cfg.Appearance.Theme + " ▸"},
		{"Save as defaults", "store the current inputs in the config file"},
		{"Reset inputs", "reload the saved defaults"},
		{"Run setup", "answer the first-run questions again"},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if i == a.settings.cursor {
			row := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label)) +
				selectedStyle.Render(f.value)
			form.WriteString(lipgloss.PlaceHorizontal(innerW, lipgloss.Left, row,
				lipgloss.WithWhitespaceBackground(t.SurfaceHover)))
		} else {
			form.WriteString(swatchStyle.Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(valueStyle.Render(f.value))
		}
		if i == settingsFieldTheme {
			form.WriteString(swatchStyle.Render(" ") + swatch)
		}
		form.WriteString("\n")
	}

	d := a.cfg.Inputs
	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	info.WriteString(labelStyle.Render("Server address:  ") + valueStyle.Render(a.cfg.Server.Addr) + "\n")
	info.WriteString(labelStyle.Render("Saved defaults:  ") + valueStyle.Render(fmt.Sprintf(
		"salary %.0f · tax %g%% · savings %.0f · %d years · return %g%%",
		d.AnnualSalary, d.TaxRatePct, d.CurrentSavings, d.YearsToRetirement, d.AnnualReturnPct)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", strings.TrimSuffix(form.String(), "\n"), cw, true))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw, false))
	return b.String()
}

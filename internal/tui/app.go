// Package tui provides the interactive Bubble Tea planner for nestegg.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/config"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabPlanner = iota
	tabChart
	tabSchedule
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Current inputs and the plan evaluated from them.
	inputs   model.Inputs
	plan     model.Plan
	schedule []projection.YearSummary
	capped   bool // contribution sits at the capacity ceiling

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	planner  plannerState
	sched    scheduleState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// NewApp creates the planner starting from in. When firstRun is set the
// setup form is shown before the planner.
func NewApp(cfg config.Config, in model.Inputs, firstRun bool) App {
	a := App{
		cfg:       cfg,
		inputs:    in,
		needSetup: firstRun,
	}
	a.recompute()
	if firstRun {
		a.setupVals = SetupValuesFrom(cfg)
		a.setupForm = NewSetupForm(&a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute runs a full evaluation pass over the current inputs. The
// contribution is re-clamped against the new capacity and written back,
// so the control never shows more than can be saved.
func (a *App) recompute() {
	a.inputs = model.Clamp(a.inputs)
	requested := a.inputs.Savings.MonthlyContribution

	a.plan = projection.Evaluate(a.inputs)
	a.capped = requested > a.plan.Contribution ||
		(a.plan.SavingsCapacity > 0 && a.plan.Contribution == a.plan.SavingsCapacity)

	a.inputs.Savings.MonthlyContribution = a.plan.Contribution
	a.plan.Inputs = a.inputs
	a.schedule = projection.Schedule(a.plan)

	a.sched.offset = min(a.sched.offset, max(len(a.schedule)-1, 0))
}

// setControl clamps v to the control's range for the current capacity,
// stores it and re-evaluates.
func (a *App) setControl(c model.Control, v float64) {
	v = c.Clamp(v, a.plan.SavingsCapacity)
	model.SetValue(&a.inputs, c.Key, v)
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Setup form intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Exact-value entry intercepts all keys
		if a.activeTab == tabPlanner && a.planner.editing {
			return a.updatePlannerInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		var handled bool
		var cmd tea.Cmd
		switch a.activeTab {
		case tabPlanner:
			handled, cmd = a.handlePlannerKey(key)
		case tabSchedule:
			handled = a.handleScheduleKey(key)
		case tabSettings:
			handled, cmd = a.handleSettingsKey(key)
		}
		if handled {
			return a, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.planner.editing {
		var cmd tea.Cmd
		a.planner.input, cmd = a.planner.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabPlanner:
			if !a.planner.editing {
				a.planner.cursor = max(a.planner.cursor-1, 0)
			}
		case tabSchedule:
			a.sched.offset = max(a.sched.offset-1, 0)
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabPlanner:
			if !a.planner.editing {
				a.planner.cursor = min(a.planner.cursor+1, len(model.Controls)-1)
			}
		case tabSchedule:
			a.sched.offset = min(a.sched.offset+1, max(len(a.schedule)-1, 0))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// finishSetup applies the form answers, saves them and starts planning from
// the new defaults. A failed save still applies the answers for this session.
func (a *App) finishSetup() {
	if err := a.setupVals.Apply(&a.cfg); err != nil {
		a.settings.saveErr = err
	} else {
		a.settings.saveErr = config.Save(a.cfg)
	}
	theme.SetActive(a.cfg.Appearance.Theme)
	a.inputs = a.cfg.PlanInputs()
	a.recompute()
	a.needSetup = false
	a.setupForm = nil
	a.activeTab = tabPlanner
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  nestegg needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Deposit).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"p c s x", "Jump to tab"},
			{"tab ⇧tab", "Next / previous tab"},
			{"j k", "Select control / scroll"},
			{"g G", "Top / bottom of schedule"},
		}},
		{"Planner", [][2]string{
			{"h l ← →", "Step the selected control"},
			{"H L", "Step ×10"},
			{"Enter", "Type an exact value"},
			{"0", "Reset control to its default"},
		}},
		{"General", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar plus a one-line result pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface).Bold(true)
	pill := pillStyle.Render(" Projected ") +
		pillAccent.Render(cli.FormatMoney(a.plan.Result.FutureSavings)) +
		pillStyle.Render(fmt.Sprintf(" │ %s at %s │ %s/mo ",
			cli.FormatMonths(a.plan.TotalMonths),
			cli.FormatPercent(a.inputs.Savings.AnnualReturn),
			cli.FormatMoney(a.plan.Contribution)))
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	status, warn := a.statusMessage()
	statusBar := components.RenderStatusBar(w, a.statusHints(), status, warn)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabPlanner:
		content = a.renderPlannerTab(cw)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	case tabSchedule:
		content = a.renderScheduleTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Exactly contentH lines, each filled to the content width
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabPlanner && a.planner.editing:
		return "[Enter]apply  [Esc]cancel"
	case a.activeTab == tabPlanner:
		return "[j/k]select  [h/l]adjust  [Enter]type  [0]reset  [?]help  [q]uit"
	case a.activeTab == tabSchedule:
		return "[j/k]scroll  [g/G]top/bottom  [?]help  [q]uit"
	case a.activeTab == tabSettings:
		return "[j/k]navigate  [Enter]select  [?]help  [q]uit"
	default:
		return "[tab]next  [?]help  [q]uit"
	}
}

// statusMessage returns the right-hand status text and whether it is a warning.
func (a App) statusMessage() (string, bool) {
	switch {
	case a.planner.err != "":
		return a.planner.err, true
	case a.settings.saveErr != nil:
		return "save failed: " + a.settings.saveErr.Error(), true
	case a.plan.SavingsCapacity == 0:
		return "expenses use all take-home income", true
	case a.capped:
		return "contribution capped at capacity", true
	case a.settings.saved != "":
		return a.settings.saved, false
	}
	return "", false
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // one-column separator
	}
	return -1
}

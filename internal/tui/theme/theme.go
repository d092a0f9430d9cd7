// Package theme defines the color themes for the nestegg planner.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the planner's color roles to concrete colors.
type Theme struct {
	Name         string
	Background   lipgloss.Color // app background
	Surface      lipgloss.Color // panels and cards
	SurfaceHover lipgloss.Color // selected row, active tab
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused panel
	TextDim      lipgloss.Color // hints, axis labels
	TextMuted    lipgloss.Color // field labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // selection and active states
	AccentBright lipgloss.Color
	Gain         lipgloss.Color // balances and growth
	GainBright   lipgloss.Color // top edge of the balance chart
	Deposit      lipgloss.Color // money the user puts in
	Warn         lipgloss.Color // contribution capped, capacity tight
	Loss         lipgloss.Color // zero capacity, errors
}

// FlexokiDark is the default theme, a warm paper-ink palette.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Gain:         "#879A39",
	GainBright:   "#A3B859",
	Deposit:      "#4385BE",
	Warn:         "#DA702C",
	Loss:         "#D14D41",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Gain:         "#A6E3A1",
	GainBright:   "#C6F6C1",
	Deposit:      "#94E2D5",
	Warn:         "#FAB387",
	Loss:         "#F38BA8",
}

// TokyoNight is a cool blue and violet theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#343A52",
	Border:       "#565F89",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Gain:         "#9ECE6A",
	GainBright:   "#B9E87A",
	Deposit:      "#7DCFFF",
	Warn:         "#FF9E64",
	Loss:         "#F7768E",
}

// Terminal sticks to the ANSI 16 palette.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Gain:         "2",
	GainBright:   "10",
	Deposit:      "4",
	Warn:         "3",
	Loss:         "1",
}

// All lists the selectable themes in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the theme every renderer reads from.
var Active = FlexokiDark

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Index returns the position of name in All, or -1.
func Index(name string) int {
	for i, t := range All {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// ByName returns a theme by name, falling back to FlexokiDark.
func ByName(name string) Theme {
	if i := Index(name); i >= 0 {
		return All[i]
	}
	return FlexokiDark
}

// Next returns the theme after name, wrapping around. dir is +1 or -1.
func Next(name string, dir int) Theme {
	i := Index(name)
	if i < 0 {
		return FlexokiDark
	}
	n := len(All)
	return All[((i+dir)%n+n)%n]
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// scheduleState tracks the schedule tab scroll position.
type scheduleState struct {
	offset int // first visible year row
}

func (a *App) handleScheduleKey(key string) bool {
	last := max(len(a.schedule)-1, 0)
	switch key {
	case "j", "down":
		a.sched.offset = min(a.sched.offset+1, last)
	case "k", "up":
		a.sched.offset = max(a.sched.offset-1, 0)
	case "g":
		a.sched.offset = 0
	case "G":
		a.sched.offset = last
	default:
		return false
	}
	return true
}

func (a App) renderScheduleTab(cw, contentH int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	depositStyle := lipgloss.NewStyle().Foreground(t.Deposit).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.GainBright).Background(t.Surface).Bold(true)

	const yearW = 6
	numW := max((innerW-yearW-4)/4, 12)
	ruleW := yearW + 4*(numW+1)

	if len(a.schedule) == 0 {
		return components.ContentCard("Schedule", mutedStyle.Render("No complete months to show."), cw, false)
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
		yearW, "Year", numW, "Start", numW, "Contributed", numW, "Growth", numW, "End")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", ruleW)))
	body.WriteString("\n")

	// Card chrome, header, two rules and the totals line.
	visible := max(contentH-8, 1)
	from := min(a.sched.offset, len(a.schedule)-1)
	to := min(from+visible, len(a.schedule))

	for _, r := range a.schedule[from:to] {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%-*d", yearW, r.Year)))
		body.WriteString(valueStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(r.StartBalance))))
		body.WriteString(depositStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(r.Contributions))))
		body.WriteString(gainStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(r.Growth))))
		body.WriteString(valueStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(r.EndBalance))))
		body.WriteString("\n")
	}

	contributed, growth := projection.Totals(a.schedule)
	body.WriteString(mutedStyle.Render(strings.Repeat("─", ruleW)))
	body.WriteString("\n")
	body.WriteString(totalStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
		yearW, "Total", numW, cli.FormatMoney(a.plan.Inputs.Savings.CurrentSavings),
		numW, cli.FormatMoney(contributed), numW, cli.FormatMoney(growth),
		numW, cli.FormatMoney(a.plan.Result.Final()))))

	title := fmt.Sprintf("Schedule  years %d-%d of %d", from+1, to, len(a.schedule))
	return components.ContentCard(title, body.String(), cw, false)
}

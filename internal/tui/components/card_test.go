package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/nestegg/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, total := range []int{80, 81, 119, 180} {
		for n := 1; n <= 5; n++ {
			widths := LayoutRow(total, n)
			sum := 0
			for _, w := range widths {
				sum += w
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
	assert.Nil(t, LayoutRow(80, 0))
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22, false)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22, true)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	assert.Len(t, lines, tallLines)

	for i, line := range lines[shortLines:] {
		assert.Contains(t, line, "\x1b[", "padding line %d has no styling", i+shortLines)
	}
}

func TestMetricRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricRow([]Metric{
		{Label: "Take-home", Value: "$3,333.33"},
		{Label: "Capacity", Value: "$1,633.33", Note: "per month"},
		{Label: "Projected", Value: "$809,433.19", Tone: theme.Active.Gain},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		assert.Equal(t, 90, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, row, "per month")
	assert.Empty(t, MetricRow(nil, 90))
}

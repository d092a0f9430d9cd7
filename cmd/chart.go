package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/projection"
	"github.com/theirongolddev/nestegg/internal/tui/components"
	"github.com/theirongolddev/nestegg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	flagChartWidth  int
	flagChartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Terminal chart of the balance over time",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 0, "Chart width in columns (default: terminal width)")
	chartCmd.Flags().IntVar(&flagChartHeight, "height", 16, "Chart height in rows")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	in, err := resolveInputs(cmd, cfg)
	if err != nil {
		return err
	}
	plan := projection.Evaluate(in)

	theme.SetActive(cfg.Appearance.Theme)

	width := flagChartWidth
	if width <= 0 {
		width = 80
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w - 4
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BALANCE OVER TIME  %s", cli.FormatMoney(plan.Result.Final()))))
	fmt.Println()
	fmt.Println(components.LineChart(
		plan.Result.SavingsOverTime,
		projection.Contributed(plan),
		plan.Inputs.Savings.YearsToRetirement,
		width, flagChartHeight,
	))
	fmt.Println()
	fmt.Printf("  %s balance   %s paid in\n",
		lipgloss.NewStyle().Foreground(theme.Active.Gain).Render("█"),
		lipgloss.NewStyle().Foreground(theme.Active.Deposit).Render("█"))
	printWarnings(plan)
	return nil
}

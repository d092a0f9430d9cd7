package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/projection"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Year-by-year balance, contributions and growth",
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	in, err := resolveInputs(cmd, loadConfigOrDefault())
	if err != nil {
		return err
	}
	plan := projection.Evaluate(in)
	years := projection.Schedule(plan)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVINGS SCHEDULE  %s at %s/mo",
		cli.FormatMonths(plan.TotalMonths), cli.FormatMoney(plan.Contribution))))
	fmt.Println()

	if len(years) == 0 {
		fmt.Println(cli.Muted("  No months to project."))
		return nil
	}

	rows := make([][]string, 0, len(years)+2)
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			cli.FormatMoney(y.StartBalance),
			cli.FormatMoney(y.Contributions),
			cli.FormatMoney(y.Growth),
			cli.FormatMoney(y.EndBalance),
		})
	}
	contrib, growth := projection.Totals(years)
	rows = append(rows, []string{"---"}, []string{
		"Total",
		cli.FormatMoney(years[0].StartBalance),
		cli.FormatMoney(contrib),
		cli.FormatMoney(growth),
		cli.FormatMoney(years[len(years)-1].EndBalance),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Start", "Contributions", "Growth", "End"},
		Rows:    rows,
	}))
	printWarnings(plan)
	return nil
}

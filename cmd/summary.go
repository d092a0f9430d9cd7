package cmd

import (
	"fmt"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Projected savings at retirement with the figures behind it",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	in, err := resolveInputs(cmd, loadConfigOrDefault())
	if err != nil {
		return err
	}
	plan := projection.Evaluate(in)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RETIREMENT PROJECTION  %s", cli.FormatMonths(plan.TotalMonths))))
	fmt.Println()

	rows := [][]string{
		{"Monthly take-home", cli.FormatMoney(plan.MonthlyIncome)},
		{"Monthly expenses", cli.FormatMoney(plan.TotalExpenses)},
		{"Savings capacity", cli.FormatMoney(plan.SavingsCapacity)},
		{"Monthly contribution", cli.FormatMoney(plan.Contribution)},
		{"---"},
		{"Annual return", cli.FormatPercent(in.Savings.AnnualReturn)},
		{"Monthly return", cli.FormatRate(plan.MonthlyReturn)},
		{"Months invested", cli.FormatNumber(int64(plan.TotalMonths))},
		{"---"},
		{"Projected savings", cli.FormatMoney(plan.Result.FutureSavings)},
		{"Trajectory end", cli.FormatMoney(plan.Result.Final())},
		{"Difference", cli.FormatMoney(projection.Discrepancy(plan))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Figure", "Value"},
		Rows:    rows,
	}))

	if len(plan.Result.SavingsOverTime) > 1 {
		fmt.Println()
		fmt.Printf("  Balance  %s  %s\n",
			cli.RenderSparkline(plan.Result.SavingsOverTime, 40),
			cli.Money(cli.FormatMoneyCompact(plan.Result.Final())))
	}

	printWarnings(plan)
	return nil
}

// printWarnings notes when the requested contribution could not be honored.
func printWarnings(plan model.Plan) {
	if flagQuiet {
		return
	}
	requested := plan.Inputs.Savings.MonthlyContribution
	switch {
	case plan.SavingsCapacity <= 0:
		fmt.Println()
		fmt.Println(cli.Warn("  Expenses use the whole take-home pay; nothing is left to contribute."))
	case requested > plan.Contribution:
		fmt.Println()
		fmt.Println(cli.Warn(fmt.Sprintf("  Contribution of %s capped at the savings capacity of %s.",
			cli.FormatMoney(requested), cli.FormatMoney(plan.SavingsCapacity))))
	}
	fmt.Println()
}

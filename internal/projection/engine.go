// Package projection computes take-home income, savings capacity and the
// month-by-month compounding projection of retirement savings.
//
// Every function is pure. Evaluate rebuilds a Plan from scratch on each call.
package projection

import (
	"math"

	"github.com/theirongolddev/nestegg/internal/model"
)

// MonthsPerYear is the compounding frequency.
const MonthsPerYear = 12

// TakeHome returns monthly income after a flat-rate tax.
func TakeHome(annualSalary, taxRate float64) float64 {
	return annualSalary * (1 - taxRate) / MonthsPerYear
}

// SavingsCapacity returns what is left of monthly income after expenses,
// floored at zero.
func SavingsCapacity(monthlyIncome float64, expenses model.ExpenseInputs) float64 {
	return math.Max(monthlyIncome-expenses.Total(), 0)
}

// ClampContribution bounds a requested contribution to [0, capacity].
func ClampContribution(contribution, capacity float64) float64 {
	if capacity < 0 {
		capacity = 0
	}
	switch {
	case contribution < 0:
		return 0
	case contribution > capacity:
		return capacity
	default:
		return contribution
	}
}

// MonthlyRateFromAnnual converts an annual return to the effective monthly
// rate: twelve compoundings at the result reproduce annualReturn exactly.
func MonthlyRateFromAnnual(annualReturn float64) float64 {
	if annualReturn == 0 {
		return 0
	}
	return math.Pow(1+annualReturn, 1.0/MonthsPerYear) - 1
}

// TotalMonths returns the projection horizon in months.
func TotalMonths(years int) int {
	return years * MonthsPerYear
}

// Project runs both recurrences over totalMonths.
//
// FutureSavings compounds each month's contribution for (totalMonths - m)
// periods, m = 0..totalMonths-1, so the last contribution still earns one
// period of growth. SavingsOverTime grows then contributes each month, so
// its final element is lower than FutureSavings by
// contribution * ((1+monthlyReturn)^totalMonths - 1). Both are kept as is.
func Project(currentSavings, contribution, monthlyReturn float64, totalMonths int) model.ProjectionResult {
	if totalMonths < 0 {
		totalMonths = 0
	}
	growth := 1 + monthlyReturn

	future := currentSavings * math.Pow(growth, float64(totalMonths))
	for m := 0; m < totalMonths; m++ {
		future += contribution * math.Pow(growth, float64(totalMonths-m))
	}

	series := make([]float64, totalMonths+1)
	series[0] = currentSavings
	for i := 1; i <= totalMonths; i++ {
		series[i] = series[i-1]*growth + contribution
	}

	return model.ProjectionResult{
		FutureSavings:   future,
		SavingsOverTime: series,
	}
}

// Evaluate runs one full pass: income and capacity first, then the
// contribution is clamped against that capacity, then the projection runs.
func Evaluate(in model.Inputs) model.Plan {
	income := TakeHome(in.Income.AnnualSalary, in.Income.TaxRate)
	capacity := SavingsCapacity(income, in.Expenses)
	contribution := ClampContribution(in.Savings.MonthlyContribution, capacity)
	rate := MonthlyRateFromAnnual(in.Savings.AnnualReturn)
	months := TotalMonths(in.Savings.YearsToRetirement)

	return model.Plan{
		Inputs:          in,
		MonthlyIncome:   income,
		TotalExpenses:   in.Expenses.Total(),
		SavingsCapacity: capacity,
		Contribution:    contribution,
		MonthlyReturn:   rate,
		TotalMonths:     months,
		Result:          Project(in.Savings.CurrentSavings, contribution, rate, months),
	}
}

// Discrepancy returns FutureSavings minus the final trajectory balance.
func Discrepancy(p model.Plan) float64 {
	return p.Result.FutureSavings - p.Result.Final()
}

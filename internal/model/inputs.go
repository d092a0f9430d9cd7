// Package model defines the value objects shared by the projection engine
// and every surface that feeds it (flags, config, TUI, HTTP).
package model

// IncomeInputs holds the salary side of a plan.
type IncomeInputs struct {
	AnnualSalary float64 `json:"annual_salary"`
	TaxRate      float64 `json:"tax_rate"` // fraction, 0.2 = 20%
}

// ExpenseInputs holds fixed monthly outgoings.
type ExpenseInputs struct {
	Rent      float64 `json:"rent"`
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
}

// Total returns the sum of all monthly expense components.
func (e ExpenseInputs) Total() float64 {
	return e.Rent + e.Food + e.Transport
}

// SavingsInputs holds the investment side of a plan.
type SavingsInputs struct {
	CurrentSavings      float64 `json:"current_savings"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualReturn        float64 `json:"annual_return"` // fraction, 0.08 = 8%
	YearsToRetirement   int     `json:"years_to_retirement"`
}

// Inputs is the complete, explicit set of values one evaluation pass consumes.
type Inputs struct {
	Income   IncomeInputs  `json:"income"`
	Expenses ExpenseInputs `json:"expenses"`
	Savings  SavingsInputs `json:"savings"`
}

// DefaultInputs returns the starting values of every control.
// MonthlyContribution is the requested default; evaluation clamps it to capacity.
func DefaultInputs() Inputs {
	return Inputs{
		Income: IncomeInputs{
			AnnualSalary: 50000,
			TaxRate:      0.20,
		},
		Expenses: ExpenseInputs{
			Rent:      1000,
			Food:      500,
			Transport: 200,
		},
		Savings: SavingsInputs{
			CurrentSavings:      10000,
			MonthlyContribution: 500,
			AnnualReturn:        0.08,
			YearsToRetirement:   30,
		},
	}
}

package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// ProjectionResult holds the two outputs of a projection.
//
// FutureSavings and the last element of SavingsOverTime come from different
// recurrences and are not expected to match.
type ProjectionResult struct {
	FutureSavings   float64   `json:"future_savings"`
	SavingsOverTime []float64 `json:"savings_over_time,omitempty"`
}

// Final returns the last trajectory balance, or 0 for an empty trajectory.
func (r ProjectionResult) Final() float64 {
	if len(r.SavingsOverTime) == 0 {
		return 0
	}
	return r.SavingsOverTime[len(r.SavingsOverTime)-1]
}

// Plan is the full output of one evaluation pass.
type Plan struct {
	Inputs          Inputs           `json:"inputs"`
	MonthlyIncome   float64          `json:"monthly_income"`
	TotalExpenses   float64          `json:"total_expenses"`
	SavingsCapacity float64          `json:"savings_capacity"`
	Contribution    float64          `json:"contribution"` // after clamping to capacity
	MonthlyReturn   float64          `json:"monthly_return"`
	TotalMonths     int              `json:"total_months"`
	Result          ProjectionResult `json:"result"`
}

// Cents rounds a currency amount to the nearest cent. NaN and infinities
// have no decimal form and become zero; callers that can see them check
// math.IsInf / math.IsNaN first.
func Cents(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/nestegg/internal/model"
)

func TestTakeHome(t *testing.T) {
	assert.InDelta(t, 3333.33, TakeHome(50000, 0.20), 0.01)
	assert.InDelta(t, 0.0, TakeHome(0, 0.3), 1e-12)
	assert.InDelta(t, 5000.0, TakeHome(60000, 0), 1e-9)
	assert.InDelta(t, 2500.0, TakeHome(60000, 0.5), 1e-9)
}

func TestTakeHomeDecreasesWithTax(t *testing.T) {
	for _, salary := range []float64{0, 1000, 50000, 250000} {
		prev := math.Inf(1)
		for tax := 0.0; tax <= 0.5; tax += 0.01 {
			got := TakeHome(salary, tax)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, prev, "salary=%v tax=%v", salary, tax)
			assert.InDelta(t, salary*(1-tax)/12, got, 1e-9)
			prev = got
		}
	}
}

func TestSavingsCapacity(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses model.ExpenseInputs
		want     float64
	}{
		{"defaults", 50000 * 0.8 / 12, model.ExpenseInputs{Rent: 1000, Food: 500, Transport: 200}, 1633.3333333},
		{"exactly break even", 1700, model.ExpenseInputs{Rent: 1000, Food: 500, Transport: 200}, 0},
		{"overspending floors at zero", 1000, model.ExpenseInputs{Rent: 1000, Food: 500, Transport: 200}, 0},
		{"no expenses", 2000, model.ExpenseInputs{}, 2000},
		{"no income", 0, model.ExpenseInputs{Rent: 50}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SavingsCapacity(tc.income, tc.expenses)
			assert.InDelta(t, tc.want, got, 1e-6)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestClampContribution(t *testing.T) {
	for _, capacity := range []float64{-100, 0, 1, 499.99, 500, 1633.33, 1e7} {
		for _, requested := range []float64{-50, 0, 250, 500, 5000} {
			got := ClampContribution(requested, capacity)
			assert.LessOrEqual(t, got, math.Max(capacity, 0), "capacity=%v requested=%v", capacity, requested)
			assert.GreaterOrEqual(t, got, 0.0)
		}
	}
	assert.InDelta(t, 500.0, ClampContribution(500, 1633.33), 1e-9)
	assert.InDelta(t, 120.0, ClampContribution(500, 120), 1e-9)
}

func TestMonthlyRateFromAnnual(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyRateFromAnnual(0))
	assert.InDelta(t, 0.00643403, MonthlyRateFromAnnual(0.08), 1e-8)

	for r := 0.0; r <= 0.15; r += 0.005 {
		m := MonthlyRateFromAnnual(r)
		assert.InDelta(t, 1+r, math.Pow(1+m, 12), 1e-9, "annual=%v", r)
		assert.Less(t, m, r/12+1e-15, "effective monthly rate never exceeds simple division")
	}
}

func TestTotalMonths(t *testing.T) {
	assert.Equal(t, 12, TotalMonths(1))
	assert.Equal(t, 360, TotalMonths(30))
	assert.Equal(t, 600, TotalMonths(50))
}

func TestProjectTrajectoryShape(t *testing.T) {
	res := Project(10000, 500, MonthlyRateFromAnnual(0.08), 360)

	require.Len(t, res.SavingsOverTime, 361)
	assert.Equal(t, 10000.0, res.SavingsOverTime[0])
	for i := 1; i < len(res.SavingsOverTime); i++ {
		assert.GreaterOrEqual(t, res.SavingsOverTime[i], res.SavingsOverTime[i-1], "month %d", i)
	}
}

func TestProjectNonDecreasing(t *testing.T) {
	for _, annual := range []float64{0, 0.01, 0.08, 0.15} {
		for _, contrib := range []float64{0, 1, 500} {
			for _, start := range []float64{0, 10000} {
				res := Project(start, contrib, MonthlyRateFromAnnual(annual), 120)
				for i := 1; i < len(res.SavingsOverTime); i++ {
					if res.SavingsOverTime[i] < res.SavingsOverTime[i-1] {
						t.Fatalf("annual=%v contrib=%v start=%v: month %d decreased", annual, contrib, start, i)
					}
				}
			}
		}
	}
}

func TestProjectFollowsRecurrence(t *testing.T) {
	rate := MonthlyRateFromAnnual(0.08)
	res := Project(10000, 500, rate, 360)

	balance := 10000.0
	for i := 1; i <= 360; i++ {
		balance = balance*(1+rate) + 500
		assert.InDelta(t, balance, res.SavingsOverTime[i], 1e-6, "month %d", i)
	}
	assert.InDelta(t, 804901.86, res.Final(), 0.01)
}

func TestProjectFutureSavingsClosedForm(t *testing.T) {
	rate := MonthlyRateFromAnnual(0.08)
	res := Project(10000, 500, rate, 360)

	assert.InDelta(t, 809433.19, res.FutureSavings, 0.01)

	// Each contribution earns one extra period relative to an ordinary annuity.
	annuityDue := 500 * (math.Pow(1+rate, 361) - (1 + rate)) / rate
	assert.InDelta(t, 10000*math.Pow(1+rate, 360)+annuityDue, res.FutureSavings, 1e-4)
}

func TestFutureSavingsDiffersFromTrajectoryEnd(t *testing.T) {
	rate := MonthlyRateFromAnnual(0.08)
	res := Project(10000, 500, rate, 360)

	assert.NotEqual(t, res.FutureSavings, res.Final())
	assert.Greater(t, res.FutureSavings, res.Final())

	gap := res.FutureSavings - res.Final()
	assert.InDelta(t, 500*(math.Pow(1+rate, 360)-1), gap, 1e-4)
	assert.InDelta(t, 4531.33, gap, 0.01)
}

func TestFutureSavingsMatchesWithoutContribution(t *testing.T) {
	rate := MonthlyRateFromAnnual(0.05)
	res := Project(10000, 0, rate, 240)
	assert.InDelta(t, res.FutureSavings, res.Final(), 1e-6)
}

func TestProjectOneYear(t *testing.T) {
	res := Project(1000, 100, MonthlyRateFromAnnual(0.1), TotalMonths(1))
	assert.Len(t, res.SavingsOverTime, 13)
}

func TestProjectFlatWhenNothingMoves(t *testing.T) {
	res := Project(10000, 0, MonthlyRateFromAnnual(0), 360)

	assert.Equal(t, 10000.0, res.FutureSavings)
	for i, v := range res.SavingsOverTime {
		assert.Equal(t, 10000.0, v, "month %d", i)
	}
}

func TestProjectZeroMonths(t *testing.T) {
	res := Project(250, 50, 0.01, 0)
	assert.Equal(t, []float64{250}, res.SavingsOverTime)
	assert.Equal(t, 250.0, res.FutureSavings)
}

func TestEvaluateDefaults(t *testing.T) {
	p := Evaluate(model.DefaultInputs())

	assert.Equal(t, "3333.33", model.Cents(p.MonthlyIncome).StringFixed(2))
	assert.Equal(t, "1700.00", model.Cents(p.TotalExpenses).StringFixed(2))
	assert.Equal(t, "1633.33", model.Cents(p.SavingsCapacity).StringFixed(2))
	assert.InDelta(t, 500.0, p.Contribution, 1e-9)
	assert.Equal(t, 360, p.TotalMonths)
	assert.InDelta(t, 0.00643403, p.MonthlyReturn, 1e-8)
	require.Len(t, p.Result.SavingsOverTime, 361)
	assert.Equal(t, "804901.86", model.Cents(p.Result.Final()).StringFixed(2))
	assert.Equal(t, "809433.19", model.Cents(p.Result.FutureSavings).StringFixed(2))
}

func TestEvaluateReclampsContributionToCapacity(t *testing.T) {
	in := model.DefaultInputs()
	in.Expenses.Rent = 3000 // capacity = 3333.33 - 3700 < 0

	p := Evaluate(in)
	assert.Equal(t, 0.0, p.SavingsCapacity)
	assert.Equal(t, 0.0, p.Contribution)
	assert.InDelta(t, 500.0, p.Inputs.Savings.MonthlyContribution, 1e-9, "requested value is kept on the inputs")

	in.Expenses.Rent = 2600 // capacity ≈ 33.33
	p = Evaluate(in)
	assert.InDelta(t, p.SavingsCapacity, p.Contribution, 1e-9)
}

func TestEvaluateBoundaryFlat(t *testing.T) {
	in := model.Inputs{
		Income:  model.IncomeInputs{AnnualSalary: 0},
		Savings: model.SavingsInputs{CurrentSavings: 10000, YearsToRetirement: 1},
	}
	p := Evaluate(in)

	assert.Equal(t, 12, p.TotalMonths)
	require.Len(t, p.Result.SavingsOverTime, 13)
	assert.Equal(t, 10000.0, p.Result.FutureSavings)
	for _, v := range p.Result.SavingsOverTime {
		assert.Equal(t, 10000.0, v)
	}
}

func TestEvaluateIsFresh(t *testing.T) {
	in := model.DefaultInputs()
	a := Evaluate(in)
	a.Result.SavingsOverTime[5] = -1

	b := Evaluate(in)
	assert.NotEqual(t, -1.0, b.Result.SavingsOverTime[5])
}

func TestDiscrepancy(t *testing.T) {
	p := Evaluate(model.DefaultInputs())
	assert.InDelta(t, 4531.33, Discrepancy(p), 0.01)
}

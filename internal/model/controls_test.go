package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsMatchDefaultInputs(t *testing.T) {
	def := DefaultInputs()
	for _, c := range Controls {
		assert.InDelta(t, c.Default, Value(def, c.Key), 1e-9, "control %s", c.Key)
	}
}

func TestControlByKey(t *testing.T) {
	c, ok := ControlByKey(KeyTaxRate)
	require.True(t, ok)
	assert.Equal(t, UnitPercent, c.Unit)
	assert.InDelta(t, 50.0, c.Max, 1e-9)

	_, ok = ControlByKey("bogus")
	assert.False(t, ok)
}

func TestControlClamp(t *testing.T) {
	tax, _ := ControlByKey(KeyTaxRate)
	assert.InDelta(t, 50.0, tax.Clamp(80, 0), 1e-9)
	assert.InDelta(t, 0.0, tax.Clamp(-3, 0), 1e-9)
	assert.InDelta(t, 20.0, tax.Clamp(math.NaN(), 0), 1e-9)

	years, _ := ControlByKey(KeyYearsToRetirement)
	assert.InDelta(t, 1.0, years.Clamp(0, 0), 1e-9)
	assert.InDelta(t, 50.0, years.Clamp(70, 0), 1e-9)
	assert.InDelta(t, 12.0, years.Clamp(11.6, 0), 1e-9)

	salary, _ := ControlByKey(KeyAnnualSalary)
	assert.InDelta(t, 1e9, salary.Clamp(1e9, 0), 1e-9)
}

func TestContributionUpperIsCapacity(t *testing.T) {
	c, _ := ControlByKey(KeyMonthlyContribution)
	assert.InDelta(t, 300.0, c.Clamp(500, 300), 1e-9)
	assert.InDelta(t, 0.0, c.Clamp(500, 0), 1e-9)
	assert.InDelta(t, 0.0, c.Clamp(500, -20), 1e-9)
	assert.InDelta(t, 200.0, c.Clamp(200, 300), 1e-9)
}

func TestSetValueRoundTrip(t *testing.T) {
	var in Inputs
	for _, c := range Controls {
		SetValue(&in, c.Key, c.Default)
	}
	assert.Equal(t, DefaultInputs(), in)
}

func TestClampStaticRanges(t *testing.T) {
	in := Inputs{
		Income:   IncomeInputs{AnnualSalary: -10, TaxRate: 0.9},
		Expenses: ExpenseInputs{Rent: -1, Food: 20, Transport: 0},
		Savings: SavingsInputs{
			CurrentSavings:      -5,
			MonthlyContribution: 1e6,
			AnnualReturn:        0.4,
			YearsToRetirement:   0,
		},
	}

	got := Clamp(in)

	assert.InDelta(t, 0.0, got.Income.AnnualSalary, 1e-9)
	assert.InDelta(t, 0.5, got.Income.TaxRate, 1e-9)
	assert.InDelta(t, 0.0, got.Expenses.Rent, 1e-9)
	assert.InDelta(t, 20.0, got.Expenses.Food, 1e-9)
	assert.InDelta(t, 0.0, got.Savings.CurrentSavings, 1e-9)
	assert.InDelta(t, 1e6, got.Savings.MonthlyContribution, 1e-9, "capacity clamp happens at evaluation")
	assert.InDelta(t, 0.15, got.Savings.AnnualReturn, 1e-9)
	assert.Equal(t, 1, got.Savings.YearsToRetirement)
}

func TestClampKeepsValidInputsExact(t *testing.T) {
	in := DefaultInputs()
	assert.Equal(t, in, Clamp(in))
}

func TestCents(t *testing.T) {
	assert.Equal(t, "3333.33", Cents(50000*0.8/12).StringFixed(2))
	assert.Equal(t, "0.01", Cents(0.005).StringFixed(2))
	assert.Equal(t, "1700.00", Cents(1700).StringFixed(2))
}

func TestCentsNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.NotPanics(t, func() {
			assert.True(t, Cents(v).IsZero(), "Cents(%v)", v)
		})
	}
}

func TestMoneyControlsAreBounded(t *testing.T) {
	for _, c := range Controls {
		if c.Unit != UnitMoney {
			continue
		}
		assert.InDelta(t, MaxMoney, c.Max, 1e-9, "control %s", c.Key)
		assert.InDelta(t, MaxMoney, c.Clamp(1e308, math.Inf(1)), 1e-9, "control %s", c.Key)
	}
}

func TestClampCapsHugeMoney(t *testing.T) {
	in := DefaultInputs()
	in.Income.AnnualSalary = 1e308
	in.Savings.CurrentSavings = math.MaxFloat64
	in.Savings.MonthlyContribution = 1e300

	got := Clamp(in)

	assert.InDelta(t, MaxMoney, got.Income.AnnualSalary, 1e-9)
	assert.InDelta(t, MaxMoney, got.Savings.CurrentSavings, 1e-9)
	assert.InDelta(t, MaxMoney, got.Savings.MonthlyContribution, 1e-9)
}

func TestUnitText(t *testing.T) {
	b, err := json.Marshal(UnitPercent)
	require.NoError(t, err)
	assert.Equal(t, `"percent"`, string(b))

	b, err = json.Marshal(Control{Key: KeyRent, Unit: UnitMoney})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"unit":"money"`)

	var u Unit
	require.NoError(t, json.Unmarshal([]byte(`"years"`), &u))
	assert.Equal(t, UnitYears, u)
	assert.Equal(t, "years", u.String())

	assert.Error(t, json.Unmarshal([]byte(`"furlongs"`), &u))
	_, err = json.Marshal(Unit(9))
	assert.Error(t, err)
}

func TestExpenseTotal(t *testing.T) {
	e := ExpenseInputs{Rent: 1000, Food: 500, Transport: 200}
	assert.InDelta(t, 1700.0, e.Total(), 1e-9)
}

func TestProjectionResultFinal(t *testing.T) {
	assert.InDelta(t, 0.0, ProjectionResult{}.Final(), 1e-9)
	assert.InDelta(t, 3.0, ProjectionResult{SavingsOverTime: []float64{1, 2, 3}}.Final(), 1e-9)
}

package model

import (
	"fmt"
	"math"
)

// Unit describes how a control value is displayed and stored.
type Unit int

const (
	UnitMoney Unit = iota
	UnitPercent
	UnitYears
)

var unitNames = [...]string{UnitMoney: "money", UnitPercent: "percent", UnitYears: "years"}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// MarshalText encodes the unit by name.
func (u Unit) MarshalText() ([]byte, error) {
	if u < 0 || int(u) >= len(unitNames) {
		return nil, fmt.Errorf("unknown unit %d", int(u))
	}
	return []byte(unitNames[u]), nil
}

// UnmarshalText decodes a unit name.
func (u *Unit) UnmarshalText(b []byte) error {
	for i, name := range unitNames {
		if name == string(b) {
			*u = Unit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown unit %q", b)
}

// MaxMoney caps every money control. At the longest horizon and highest
// return the projection stays well inside float64 and int64 range.
const MaxMoney = 1e12

// Key names one inbound parameter. Keys double as flag, query and config names.
type Key string

const (
	KeyAnnualSalary        Key = "annual_salary"
	KeyTaxRate             Key = "tax_rate"
	KeyRent                Key = "rent"
	KeyFood                Key = "food"
	KeyTransport           Key = "transport"
	KeyCurrentSavings      Key = "current_savings"
	KeyMonthlyContribution Key = "monthly_contribution"
	KeyAnnualReturn        Key = "annual_return"
	KeyYearsToRetirement   Key = "years_to_retirement"
)

// Control describes one user-adjustable parameter in display units
// (percent controls hold 20 for 20%).
type Control struct {
	Key     Key     `json:"key"`
	Label   string  `json:"label"`
	Section string  `json:"section"`
	Unit    Unit    `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Controls lists every parameter in presentation order.
//
// The monthly contribution's real ceiling is the savings capacity of the
// current evaluation pass; MaxMoney only bounds the requested value.
var Controls = []Control{
	{Key: KeyAnnualSalary, Label: "Annual salary", Section: "Income", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 1000, Default: 50000},
	{Key: KeyTaxRate, Label: "Tax rate", Section: "Income", Unit: UnitPercent, Min: 0, Max: 50, Step: 1, Default: 20},
	{Key: KeyRent, Label: "Rent", Section: "Expenses", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 50, Default: 1000},
	{Key: KeyFood, Label: "Food", Section: "Expenses", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 50, Default: 500},
	{Key: KeyTransport, Label: "Transport", Section: "Expenses", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 50, Default: 200},
	{Key: KeyCurrentSavings, Label: "Current savings", Section: "Savings", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 1000, Default: 10000},
	{Key: KeyMonthlyContribution, Label: "Monthly contribution", Section: "Savings", Unit: UnitMoney, Min: 0, Max: MaxMoney, Step: 50, Default: 500},
	{Key: KeyAnnualReturn, Label: "Annual return", Section: "Savings", Unit: UnitPercent, Min: 0, Max: 15, Step: 0.5, Default: 8},
	{Key: KeyYearsToRetirement, Label: "Years to retirement", Section: "Savings", Unit: UnitYears, Min: 1, Max: 50, Step: 1, Default: 30},
}

// ControlByKey looks up a control definition.
func ControlByKey(k Key) (Control, bool) {
	for _, c := range Controls {
		if c.Key == k {
			return c, true
		}
	}
	return Control{}, false
}

// Upper returns the effective ceiling of the control for a given capacity.
func (c Control) Upper(capacity float64) float64 {
	if c.Key == KeyMonthlyContribution {
		return math.Min(math.Max(capacity, 0), c.Max)
	}
	return c.Max
}

// Clamp forces v into [Min, Upper(capacity)]. NaN falls back to the default.
func (c Control) Clamp(v, capacity float64) float64 {
	if math.IsNaN(v) {
		v = c.Default
	}
	if c.Unit == UnitYears {
		v = math.Round(v)
	}
	if v < c.Min {
		v = c.Min
	}
	if hi := c.Upper(capacity); v > hi {
		v = hi
	}
	return v
}

// Value reads a control's current value from in, in display units.
func Value(in Inputs, k Key) float64 {
	switch k {
	case KeyAnnualSalary:
		return in.Income.AnnualSalary
	case KeyTaxRate:
		return in.Income.TaxRate * 100
	case KeyRent:
		return in.Expenses.Rent
	case KeyFood:
		return in.Expenses.Food
	case KeyTransport:
		return in.Expenses.Transport
	case KeyCurrentSavings:
		return in.Savings.CurrentSavings
	case KeyMonthlyContribution:
		return in.Savings.MonthlyContribution
	case KeyAnnualReturn:
		return in.Savings.AnnualReturn * 100
	case KeyYearsToRetirement:
		return float64(in.Savings.YearsToRetirement)
	}
	return 0
}

// SetValue writes a display-unit value into in. It does not clamp.
func SetValue(in *Inputs, k Key, v float64) {
	switch k {
	case KeyAnnualSalary:
		in.Income.AnnualSalary = v
	case KeyTaxRate:
		in.Income.TaxRate = v / 100
	case KeyRent:
		in.Expenses.Rent = v
	case KeyFood:
		in.Expenses.Food = v
	case KeyTransport:
		in.Expenses.Transport = v
	case KeyCurrentSavings:
		in.Savings.CurrentSavings = v
	case KeyMonthlyContribution:
		in.Savings.MonthlyContribution = v
	case KeyAnnualReturn:
		in.Savings.AnnualReturn = v / 100
	case KeyYearsToRetirement:
		in.Savings.YearsToRetirement = int(math.Round(v))
	}
}

// Clamp applies every static control range to in. The contribution is only
// floored here; its capacity ceiling is applied during evaluation.
func Clamp(in Inputs) Inputs {
	out := in
	for _, c := range Controls {
		v := Value(in, c.Key)
		if cv := c.Clamp(v, math.Inf(1)); cv != v {
			SetValue(&out, c.Key, cv)
		}
	}
	return out
}

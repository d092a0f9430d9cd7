package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
)

func TestWritePDF(t *testing.T) {
	plan := projection.Evaluate(model.DefaultInputs())

	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, plan, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
	assert.Greater(t, len(out), 2000)
}

func TestWritePDFZeroHorizon(t *testing.T) {
	in := model.DefaultInputs()
	in.Savings.YearsToRetirement = 0
	in.Savings.CurrentSavings = 0
	plan := projection.Evaluate(in)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, plan))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePDFPropagatesWriteError(t *testing.T) {
	plan := projection.Evaluate(model.DefaultInputs())
	err := WritePDF(failingWriter{}, plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing pdf")
}

func TestWriteCSV(t *testing.T) {
	plan := projection.Evaluate(model.DefaultInputs())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, plan))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, plan.TotalMonths+2)

	assert.Equal(t, CSVHeader, recs[0])
	assert.Equal(t, []string{"0", "0", "10000.00", "10000.00", "0.00"}, recs[1])
	assert.Equal(t, []string{"1", "1", "10564.34", "10500.00", "64.34"}, recs[2])
	assert.Equal(t, "12", recs[13][0])
	assert.Equal(t, "1", recs[13][1])
	assert.Equal(t, "2", recs[14][1])

	last := recs[len(recs)-1]
	assert.Equal(t, "360", last[0])
	assert.Equal(t, "30", last[1])
	assert.Equal(t, "804901.86", last[2])
	assert.Equal(t, "190000.00", last[3])
}

func TestWriteCSVFailure(t *testing.T) {
	plan := projection.Evaluate(model.DefaultInputs())
	assert.Error(t, WriteCSV(failingWriter{}, plan))
}

// ceilingInputs puts each money control, then all income at once, at its
// maximum with the longest horizon and highest return.
func ceilingInputs() map[string]model.Inputs {
	cases := map[string]model.Inputs{}
	for _, c := range model.Controls {
		if c.Unit != model.UnitMoney {
			continue
		}
		in := model.DefaultInputs()
		in.Savings.AnnualReturn = 0.15
		in.Savings.YearsToRetirement = 50
		model.SetValue(&in, c.Key, 1e308)
		cases[string(c.Key)] = in
	}

	all := model.DefaultInputs()
	all.Income = model.IncomeInputs{AnnualSalary: 1e308, TaxRate: 0}
	all.Expenses = model.ExpenseInputs{}
	all.Savings = model.SavingsInputs{
		CurrentSavings:      1e308,
		MonthlyContribution: 1e308,
		AnnualReturn:        0.15,
		YearsToRetirement:   50,
	}
	cases["everything"] = all
	return cases
}

func TestExportsAtMoneyCeiling(t *testing.T) {
	for name, in := range ceilingInputs() {
		t.Run(name, func(t *testing.T) {
			plan := projection.Evaluate(model.Clamp(in))
			require.False(t, math.IsInf(plan.Result.FutureSavings, 0) || math.IsNaN(plan.Result.FutureSavings))
			require.False(t, math.IsInf(plan.Result.Final(), 0))

			var money string
			assert.NotPanics(t, func() { money = cli.FormatMoney(plan.Result.FutureSavings) })
			assert.NotContains(t, money, "∞")

			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, plan))
			assert.NotContains(t, buf.String(), "Inf")
			assert.NotContains(t, buf.String(), "NaN")
			assert.Equal(t, 602, strings.Count(buf.String(), "\n"))

			buf.Reset()
			require.NoError(t, WritePDF(&buf, plan))
		})
	}
}

func TestWriteCSVNonFiniteBalance(t *testing.T) {
	plan := model.Plan{
		Inputs:      model.DefaultInputs(),
		TotalMonths: 1,
		Result:      model.ProjectionResult{SavingsOverTime: []float64{10000, math.Inf(1)}},
	}

	var buf bytes.Buffer
	require.NotPanics(t, func() { require.NoError(t, WriteCSV(&buf, plan)) })
	assert.Contains(t, buf.String(), "+Inf")
}

package projection

import "github.com/theirongolddev/nestegg/internal/model"

// YearSummary condenses twelve months of the trajectory.
type YearSummary struct {
	Year          int     `json:"year"`
	StartBalance  float64 `json:"start_balance"`
	Contributions float64 `json:"contributions"`
	Growth        float64 `json:"growth"`
	EndBalance    float64 `json:"end_balance"`
}

// Schedule splits a plan's trajectory into yearly rows. Growth is whatever
// the balance gained beyond the year's contributions.
func Schedule(p model.Plan) []YearSummary {
	series := p.Result.SavingsOverTime
	if len(series) < 2 {
		return nil
	}

	months := len(series) - 1
	years := (months + MonthsPerYear - 1) / MonthsPerYear
	rows := make([]YearSummary, 0, years)

	for y := 0; y < years; y++ {
		from := y * MonthsPerYear
		to := from + MonthsPerYear
		if to > months {
			to = months
		}
		contrib := p.Contribution * float64(to-from)
		start, end := series[from], series[to]
		rows = append(rows, YearSummary{
			Year:          y + 1,
			StartBalance:  start,
			Contributions: contrib,
			Growth:        end - start - contrib,
			EndBalance:    end,
		})
	}
	return rows
}

// Totals sums contributions and growth across a schedule.
func Totals(rows []YearSummary) (contributions, growth float64) {
	for _, r := range rows {
		contributions += r.Contributions
		growth += r.Growth
	}
	return contributions, growth
}

// Contributed returns the cumulative money paid in at each trajectory
// point: the starting balance plus every contribution so far.
func Contributed(p model.Plan) []float64 {
	n := len(p.Result.SavingsOverTime)
	out := make([]float64, n)
	for i := range out {
		out[i] = p.Inputs.Savings.CurrentSavings + p.Contribution*float64(i)
	}
	return out
}

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
)

// CSVHeader is the first record written by WriteCSV.
var CSVHeader = []string{"month", "year", "balance", "contributed", "growth"}

// WriteCSV writes one record per trajectory point. Month 0 is the opening
// balance. Amounts are rounded to the cent.
func WriteCSV(w io.Writer, plan model.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	paidIn := projection.Contributed(plan)
	for i, bal := range plan.Result.SavingsOverTime {
		rec := []string{
			strconv.Itoa(i),
			strconv.Itoa((i + projection.MonthsPerYear - 1) / projection.MonthsPerYear),
			amount(bal),
			amount(paidIn[i]),
			amount(bal - paidIn[i]),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv month %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// amount formats a balance to the cent. Non-finite values are written as
// Go prints them rather than failing the export.
func amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return model.Cents(v).StringFixed(2)
}

// Package report exports an evaluated plan as a printable PDF or as CSV.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/nestegg/internal/cli"
	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/projection"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight

	chartHeight = 60.0
)

type rgb struct{ r, g, b int }

var (
	colorHeading = rgb{0, 51, 102}
	colorText    = rgb{50, 50, 50}
	colorMuted   = rgb{120, 120, 120}
	colorBalance = rgb{36, 131, 123}
	colorPaidIn  = rgb{188, 82, 21}
	colorGrid    = rgb{220, 220, 220}
)

// pdfReport draws one plan onto an A4 document.
type pdfReport struct {
	pdf  *fpdf.Fpdf
	plan model.Plan
	now  time.Time
}

// WritePDF renders the plan as a two-page A4 report: inputs, results and the
// balance chart first, then the year-by-year schedule.
func WritePDF(w io.Writer, plan model.Plan) error {
	return writePDF(w, plan, time.Now())
}

func writePDF(w io.Writer, plan model.Plan, now time.Time) error {
	r := &pdfReport{
		pdf:  fpdf.New("P", "mm", "A4", ""),
		plan: plan,
		now:  now,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetCreationDate(now)
	r.pdf.SetTitle("Retirement savings projection", false)

	r.addSummaryPage()
	r.addSchedulePage()

	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func (r *pdfReport) addSummaryPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.setText(colorHeading)
	r.pdf.CellFormat(contentWidth, 12, "Retirement Savings Projection", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.setText(colorMuted)
	r.pdf.CellFormat(contentWidth, 5, "Generated "+r.now.Format("2 January 2006"), "", 1, "L", false, 0, "")
	r.pdf.Ln(6)

	r.drawSectionHeader("Inputs")
	widths := []float64{contentWidth * 0.6, contentWidth * 0.4}
	r.drawTableHeader([]string{"Parameter", "Value"}, widths)
	for _, c := range model.Controls {
		v := model.Value(r.plan.Inputs, c.Key)
		if c.Key == model.KeyMonthlyContribution {
			v = r.plan.Contribution
		}
		r.drawTableRow([]string{c.Label, cli.FormatControl(c, v)}, widths, false)
	}
	r.pdf.Ln(6)

	p := r.plan
	r.drawSectionHeader("Results")
	r.drawTableHeader([]string{"Figure", "Amount"}, widths)
	rows := [][2]string{
		{"Monthly take-home", cli.FormatMoney(p.MonthlyIncome)},
		{"Monthly expenses", cli.FormatMoney(p.TotalExpenses)},
		{"Savings capacity", cli.FormatMoney(p.SavingsCapacity)},
		{"Monthly contribution", cli.FormatMoney(p.Contribution)},
		{"Monthly return", cli.FormatRate(p.MonthlyReturn)},
		{"Months invested", fmt.Sprintf("%d (%s)", p.TotalMonths, cli.FormatMonths(p.TotalMonths))},
		{"Trajectory end balance", cli.FormatMoney(p.Result.Final())},
		{"Closed-form difference", cli.FormatMoney(projection.Discrepancy(p))},
	}
	for _, row := range rows {
		r.drawTableRow(row[:], widths, false)
	}
	r.drawTableRow([]string{"Projected savings at retirement", cli.FormatMoney(p.Result.FutureSavings)}, widths, true)
	r.pdf.Ln(8)

	r.drawSectionHeader("Balance Over Time")
	r.drawTrajectoryChart(r.pdf.GetY(), chartHeight)
}

func (r *pdfReport) addSchedulePage() {
	rows := projection.Schedule(r.plan)
	if len(rows) == 0 {
		return
	}

	r.pdf.AddPage()
	r.drawSectionHeader("Year-by-Year Schedule")

	widths := []float64{contentWidth - 160, 40, 40, 40, 40}
	headers := []string{"Year", "Start", "Contributions", "Growth", "End"}
	r.drawTableHeader(headers, widths)

	for _, y := range rows {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			fmt.Sprintf("%d", y.Year),
			cli.FormatMoney(y.StartBalance),
			cli.FormatMoney(y.Contributions),
			cli.FormatMoney(y.Growth),
			cli.FormatMoney(y.EndBalance),
		}, widths, false)
	}

	contrib, growth := projection.Totals(rows)
	r.drawTableRow([]string{
		"Total",
		cli.FormatMoney(rows[0].StartBalance),
		cli.FormatMoney(contrib),
		cli.FormatMoney(growth),
		cli.FormatMoney(rows[len(rows)-1].EndBalance),
	}, widths, true)
}

// drawTrajectoryChart plots the balance and the money paid in as two
// polylines over a light grid starting at top.
func (r *pdfReport) drawTrajectoryChart(top, height float64) {
	balance := r.plan.Result.SavingsOverTime
	paidIn := projection.Contributed(r.plan)

	left, width := marginLeft+18, contentWidth-18
	bottom := top + height

	peak := 0.0
	for _, v := range balance {
		peak = math.Max(peak, v)
	}
	if peak <= 0 || len(balance) < 2 {
		r.pdf.SetFont("Arial", "I", 9)
		r.setText(colorMuted)
		r.pdf.CellFormat(contentWidth, 6, "No growth to chart.", "", 1, "L", false, 0, "")
		return
	}

	r.pdf.SetLineWidth(0.2)
	r.setDraw(colorGrid)
	r.pdf.SetFont("Arial", "", 7)
	r.setText(colorMuted)
	for i := 0; i <= 4; i++ {
		y := bottom - height*float64(i)/4
		r.pdf.Line(left, y, left+width, y)
		r.pdf.SetXY(marginLeft, y-2)
		r.pdf.CellFormat(16, 4, cli.FormatMoneyCompact(peak*float64(i)/4), "", 0, "R", false, 0, "")
	}

	years := (len(balance) - 1 + 11) / 12
	step := max(1, years/10)
	for y := 0; y <= years; y += step {
		x := left + width*math.Min(float64(y*12)/float64(len(balance)-1), 1)
		r.pdf.SetXY(x-5, bottom+1)
		r.pdf.CellFormat(10, 4, fmt.Sprintf("%d", y), "", 0, "C", false, 0, "")
	}

	plot := func(values []float64, c rgb) {
		r.setDraw(c)
		r.pdf.SetLineWidth(0.6)
		last := float64(len(values) - 1)
		for i := 1; i < len(values); i++ {
			x0 := left + width*float64(i-1)/last
			x1 := left + width*float64(i)/last
			y0 := bottom - height*values[i-1]/peak
			y1 := bottom - height*values[i]/peak
			r.pdf.Line(x0, y0, x1, y1)
		}
	}
	plot(paidIn, colorPaidIn)
	plot(balance, colorBalance)

	r.pdf.SetXY(marginLeft, bottom+7)
	r.legend("Balance", colorBalance)
	r.legend("Paid in", colorPaidIn)
	r.pdf.Ln(6)
}

func (r *pdfReport) legend(label string, c rgb) {
	r.pdf.SetFillColor(c.r, c.g, c.b)
	x, y := r.pdf.GetXY()
	r.pdf.Rect(x, y+1.5, 3, 3, "F")
	r.pdf.SetX(x + 4)
	r.setText(colorText)
	r.pdf.SetFont("Arial", "", 8)
	r.pdf.CellFormat(25, 6, label, "", 0, "L", false, 0, "")
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.setText(colorHeading)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.setDraw(colorHeading)
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(4)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, align(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, bold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.setText(colorText)
	if bold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}
	r.setDraw(colorGrid)
	r.pdf.SetLineWidth(0.2)

	for i, cell := range cells {
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) setText(c rgb) { r.pdf.SetTextColor(c.r, c.g, c.b) }
func (r *pdfReport) setDraw(c rgb) { r.pdf.SetDrawColor(c.r, c.g, c.b) }

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

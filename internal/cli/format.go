// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/nestegg/internal/model"
)

// FormatMoney formats a currency amount rounded to the cent.
// e.g., 809433.1909 -> "$809,433.19", -12.5 -> "-$12.50"
func FormatMoney(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	cents := model.Cents(v)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Neg()
	}

	s := cents.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + s
	}
	return sign + "$" + FormatNumber(n) + "." + frac
}

// FormatMoneyCompact formats a currency amount with a magnitude suffix.
// e.g., 809433 -> "$809.4K", 1234567 -> "$1.23M"
func FormatMoneyCompact(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	if v < 0 {
		return "-" + FormatMoneyCompact(-v)
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return "$" + FormatNumber(int64(math.Round(v)))
	}
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "n/a", true
	case math.IsInf(v, 1):
		return "$∞", true
	case math.IsInf(v, -1):
		return "-$∞", true
	}
	return "", false
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 fraction as a percentage string,
// dropping the decimal for whole percents.
func FormatPercent(f float64) string {
	pct := f * 100
	if math.Abs(pct-math.Round(pct)) < 1e-9 {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRate formats a small periodic rate with enough precision to be useful.
// e.g., 0.0064340301 -> "0.643403%"
func FormatRate(f float64) string {
	return fmt.Sprintf("%.6f%%", f*100)
}

// FormatMonths formats a month count as years and months.
// e.g., 360 -> "30y", 30 -> "2y 6m", 7 -> "7m"
func FormatMonths(months int) string {
	if months <= 0 {
		return "0m"
	}
	y, m := months/12, months%12
	switch {
	case y == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dy", y)
	default:
		return fmt.Sprintf("%dy %dm", y, m)
	}
}

// FormatControl formats a control value in its display unit.
func FormatControl(c model.Control, v float64) string {
	switch c.Unit {
	case model.UnitPercent:
		return FormatPercent(v / 100)
	case model.UnitYears:
		if v == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%.0f years", v)
	default:
		return FormatMoney(v)
	}
}

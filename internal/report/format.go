package report

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders d with two decimals and thousands separators,
// e.g. $1,234.50 or -$210.00.
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	_, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	return sign + "$" + humanize.Comma(rounded.Abs().IntPart()) + "." + cents
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a whole-unit amount with thousands separators, e.g. 1,040,000
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	var sb strings.Builder
	if d.Round(0).IsNegative() {
		sb.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatRupees is FormatAmount with the rupee sign
func FormatRupees(d decimal.Decimal) string {
	if d.Round(0).IsNegative() {
		return "-₹" + FormatAmount(d.Abs())
	}
	return "₹" + FormatAmount(d)
}

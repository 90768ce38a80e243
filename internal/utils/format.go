package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Usage levels of a budget or income source, by percent used.
const (
	UsageOK      = "ok"
	UsageWarning = "warning"
	UsageDanger  = "danger"
)

var (
	warningThreshold = decimal.NewFromInt(75)
	dangerThreshold  = decimal.NewFromInt(90)
	hundred          = decimal.NewFromInt(100)
)

// FormatCurrency renders an amount as dollars with thousands separators and two decimals.
// Example: 1234.5 returns "$1,234.50", -20 returns "-$20.00".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a percentage with one decimal, e.g. "37.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// ProgressWidth clamps a percentage to the 0..100 range used by progress bars.
func ProgressWidth(p decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(p, hundred))
}

// UsageStatus classifies a percent used: danger above 90, warning above 75, ok otherwise.
func UsageStatus(percentUsed decimal.Decimal) string {
	switch {
	case percentUsed.GreaterThan(dangerThreshold):
		return UsageDanger
	case percentUsed.GreaterThan(warningThreshold):
		return UsageWarning
	default:
		return UsageOK
	}
}

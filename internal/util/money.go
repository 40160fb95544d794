// Package util holds the display formatting helpers shared by the API and
// CLI layers.
package util

import (
	"fmt"
	"strings"
)

const (
	crore = 10_000_000
	lakh  = 100_000
)

// FormatINR renders an amount in rupee notation: plain with thousand
// separators below a lakh, then "L" and "Cr" units above.
func FormatINR(amount float64) string {
	switch {
	case amount >= crore:
		return fmt.Sprintf("₹%.2f Cr", amount/crore)
	case amount >= lakh:
		return fmt.Sprintf("₹%.2f L", amount/lakh)
	default:
		return "₹" + groupThousands(fmt.Sprintf("%.0f", amount))
	}
}

// FormatPercent renders a signed percentage.
func FormatPercent(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

func groupThousands(digits string) string {
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

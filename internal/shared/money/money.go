package money

import (
	"fmt"
	"strings"
)

// FormatMinor renders a minor-unit amount with its currency symbol.
func FormatMinor(currency string, cents int64) string {
	major := float64(cents) / 100.0
	switch strings.ToUpper(currency) {
	case "AUD", "USD", "NZD":
		return fmt.Sprintf("$%.2f", major)
	case "EUR":
		return fmt.Sprintf("€%.2f", major)
	case "GBP":
		return fmt.Sprintf("£%.2f", major)
	default:
		return fmt.Sprintf("%.2f %s", major, strings.ToUpper(currency))
	}
}

// UnitMajor derives a per-unit major-currency price from a minor-unit line
// total. Order line items store this major-unit price while the order total
// stays in minor units; keep both as-is, display code depends on it.
func UnitMajor(lineTotalMinor, quantity int64) float64 {
	if quantity <= 0 {
		quantity = 1
	}
	return float64(lineTotalMinor) / float64(quantity) / 100.0
}

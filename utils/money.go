package utils

import "fmt"

// FormatCents renders minor units as a two-decimal amount for CSV export
// and dashboard display. Amounts are stored as int64 cents everywhere;
// formatting is the only place decimals appear.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

package newsletter

import "fmt"

// FormatMoney renders a dollar amount with the suffix the audience
// expects: $1.53B, $238.0M, $750K. Amounts at or below zero render as
// the empty string so templates can fall back to TBD.
func FormatMoney(amount int64) string {
	switch {
	case amount <= 0:
		return ""
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", float64(amount)/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", float64(amount)/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.0fK", float64(amount)/1_000)
	default:
		return fmt.Sprintf("$%d", amount)
	}
}

// Package format renders prices, currency amounts and percentages the way
// the chat UI displays them. The exact output shapes are load-bearing: widget
// payloads and message text are compared byte-for-byte downstream.
package format

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var grouped = message.NewPrinter(language.English)

// Price formats a token price:
// below 0.00001 exponential with 2 significant figures, below 1 six decimals,
// below 1000 two decimals, otherwise comma-grouped with two decimals.
func Price(v float64) string {
	switch {
	case v < 0.00001:
		return "$" + strconv.FormatFloat(v, 'e', 1, 64)
	case v < 1:
		return fmt.Sprintf("$%.6f", v)
	case v < 1000:
		return fmt.Sprintf("$%.2f", v)
	default:
		return grouped.Sprintf("$%.2f", v)
	}
}

// Currency formats a USD amount with magnitude suffixes.
func Currency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// Percent formats a signed percentage with two decimals: "+10.00%", "-5.25%".
func Percent(v float64) string {
	return fmt.Sprintf("%s%.2f%%", sign(v), v)
}

// PercentShort formats a signed percentage with one decimal, used in
// performer callouts: "+10.0%", "-5.0%".
func PercentShort(v float64) string {
	return fmt.Sprintf("%s%.1f%%", sign(v), v)
}

func sign(v float64) string {
	if v >= 0 {
		return "+"
	}
	return ""
}

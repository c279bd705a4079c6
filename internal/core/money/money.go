// Package money renders peso amounts for display
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol prefixes every rendered amount
const Symbol = "₱"

var printer = message.NewPrinter(language.English)

// Peso renders v with thousands separators and two decimals, e.g. ₱1,400.00
func Peso(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if v < 0 {
		return "-" + Symbol + printer.Sprintf("%.2f", -v)
	}
	return Symbol + printer.Sprintf("%.2f", v)
}

// Compact renders v without decimals for chart axes, e.g. ₱12,500
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return Symbol + printer.Sprintf("%.0f", math.Round(v))
}

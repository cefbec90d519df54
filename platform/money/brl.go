// Package money formats monetary amounts for Brazilian audiences.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount in centavos as "R$ 1.800,00".
func FormatBRL(cents int64) string {
	return "R$ " + printer.Sprintf("%.2f", float64(cents)/100)
}

// FormatRange renders a min/max pair as "R$ 350,00 a R$ 500,00".
func FormatRange(minCents, maxCents int64) string {
	return FormatBRL(minCents) + " a " + FormatBRL(maxCents)
}

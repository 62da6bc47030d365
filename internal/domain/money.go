package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders centavos the way the storefront displays money,
// e.g. 25190 -> "R$ 251,90".
func FormatBRL(centavos int64) string {
	return brlPrinter.Sprintf("R$ %.2f", float64(centavos)/100)
}

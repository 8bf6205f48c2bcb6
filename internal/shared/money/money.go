// Package money formatea importes en las dos monedas del recibo.
package money

import (
	"github.com/leekchan/accounting"
)

// Formateadores con las convenciones de cada locale: pt-BR usa punto de
// millar y coma decimal con el símbolo separado; en-US lo contrario.
var (
	brl = accounting.Accounting{Symbol: "R$ ", Precision: 2, Thousand: ".", Decimal: ","}
	usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}
)

// FormatBRL devuelve el importe como "R$ 1.234,56".
func FormatBRL(amount float64) string {
	return brl.FormatMoney(amount)
}

// FormatUSD devuelve el importe como "$1,234.56".
func FormatUSD(amount float64) string {
	return usd.FormatMoney(amount)
}

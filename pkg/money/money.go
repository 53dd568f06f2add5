// Package money agrupa utilidades de presentación de importes en rupias y
// normalización de claves de texto (nombres de parte, ítem y lote).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale usado en recibos (agrupación india de miles).
var Locale = language.MustParse("en-IN")

// Rupees formatea un importe con 2 decimales y símbolo ₹ (ej. "₹224.00").
// El redondeo ocurre aquí, nunca en los cálculos internos.
func Rupees(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("₹%.2f", d.Round(2).InexactFloat64())
}

// Grouped formatea con 2 decimales y agrupación india sin símbolo (ej. "1,23,456.50").
// Para documentos cuyas fuentes no incluyen el glifo ₹.
func Grouped(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Plain formatea un importe con 2 decimales sin símbolo ni separadores de miles.
func Plain(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// Percent formatea un porcentaje sin ceros de relleno (ej. "12%", "2.5%").
func Percent(d decimal.Decimal) string {
	return d.String() + "%"
}

var folder = cases.Fold()

// FoldKey normaliza un texto para comparar sin distinguir mayúsculas (Unicode case folding).
func FoldKey(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// Package billing contiene la aritmética pura de facturas de venta y devolución:
// acotado de cantidades, valoración por línea y agregados con GST.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ClampQuantity acota value a [1, ceiling]. Con ceiling < 1 devuelve 0 (nada devolvible).
// Es idempotente: acotar un valor ya válido no lo cambia.
func ClampQuantity(value, ceiling int) int {
	if ceiling < 1 {
		return 0
	}
	if value < 1 {
		return 1
	}
	if value > ceiling {
		return ceiling
	}
	return value
}

// ClampPercent acota un porcentaje a [0, 100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// LineAmounts desglose de una línea.
type LineAmounts struct {
	Gross    decimal.Decimal // cantidad × valor unitario
	Discount decimal.Decimal
	Taxable  decimal.Decimal
	GST      decimal.Decimal
	Net      decimal.Decimal
}

// ComputeLine valora una línea: el descuento se aplica sobre el bruto y el GST sobre el neto de descuento.
func ComputeLine(qty int, unitValue, discountPct, gstPct decimal.Decimal) LineAmounts {
	gross := decimal.NewFromInt(int64(qty)).Mul(unitValue)
	discount := gross.Mul(discountPct).Div(hundred)
	taxable := gross.Sub(discount)
	gst := taxable.Mul(gstPct).Div(hundred)
	return LineAmounts{
		Gross:    gross,
		Discount: discount,
		Taxable:  taxable,
		GST:      gst,
		Net:      taxable.Add(gst),
	}
}

// ComputeTotals agrega las líneas seleccionadas. Función pura y determinista.
// GST se reparte 50/50 en SGST/CGST (operación intraestatal); IGST es siempre 0.
func ComputeTotals(items []entity.StagedLineItem, valuation entity.Valuation) entity.BillTotals {
	t := entity.BillTotals{
		TotalAmount:   decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalGST:      decimal.Zero,
		IGST:          decimal.Zero,
	}
	for _, it := range items {
		if !it.Selected {
			continue
		}
		line := ComputeLine(it.ReturnQuantity, it.UnitValue(valuation), it.DiscountPercent, it.GSTPercentage)
		t.TotalItems++
		t.TotalQuantity += it.ReturnQuantity
		t.TotalAmount = t.TotalAmount.Add(line.Gross)
		t.TotalDiscount = t.TotalDiscount.Add(line.Discount)
		t.TotalGST = t.TotalGST.Add(line.GST)
	}
	t.SGST = t.TotalGST.Div(two)
	t.CGST = t.TotalGST.Sub(t.SGST)
	t.NetAmount = t.TotalAmount.Sub(t.TotalDiscount).Add(t.TotalGST)
	return t
}

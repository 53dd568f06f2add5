// Package pdf implementa returns.ReceiptRenderer con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia + contacto │  Título + N° + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTE: Cliente/Proveedor + periodo + GST + referencia       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Sr | Ítem | Lote | Venc. | Cant | Tarifa | Desc |    │
//	│         GST | Valor                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Importe / Descuento / SGST / CGST / IGST / NETO    │
//	│  NOTAS + pie                                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/money"
)

// Verificar en tiempo de compilación que ReceiptRenderer implementa el puerto.
var _ returns.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Pharmacy datos de la farmacia emisora impresos en el encabezado.
type Pharmacy struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	Phone        string
	Email        string
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReceiptRenderer genera el recibo PDF de una factura confirmada.
type ReceiptRenderer struct {
	pharmacy Pharmacy
}

// NewReceiptRenderer construye el generador.
func NewReceiptRenderer(p Pharmacy) *ReceiptRenderer { return &ReceiptRenderer{pharmacy: p} }

// Render genera el PDF. Los importes se redondean a 2 decimales solo aquí.
func (r *ReceiptRenderer) Render(_ context.Context, kind entity.BillKind, bill *entity.FinalizedBill) (*entity.Receipt, error) {
	if bill == nil || bill.Number == "" {
		return nil, fmt.Errorf("pdf: la factura no tiene número")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kind.Title+" "+bill.Number, true).
		WithAuthor(r.pharmacy.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(kind, bill, r.pharmacy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(kind, bill.Header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(bill.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill.Totals.Rounded()))

	if bill.Header.Notes != "" {
		m.AddRows(notesRow(bill.Header.Notes))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(kind))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &entity.Receipt{
		Filename:    kind.ReceiptFilename(bill.Number),
		ContentType: "application/pdf",
		Content:     doc.GetBytes(),
	}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: farmacia (izq) y título + número + fecha (der).
func headerRow(kind entity.BillKind, bill *entity.FinalizedBill, p Pharmacy) core.Row {
	fecha := formatDate(bill.CreatedAt)
	if fecha == "" {
		fecha = formatDate(bill.Header.Period.Start)
	}

	return row.New(24).Add(
		col.New(7).Add(
			text.New(nonEmpty(p.Name, "Pharmacy"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(p.AddressLine1, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(p.AddressLine2, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(p.Phone, "—"), nonEmpty(p.Email, "—")),
				props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(kind.Title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("No. "+bill.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: datos de la parte y del periodo consultado.
func partyRow(kind entity.BillKind, h entity.BillHeader) core.Row {
	period := formatDate(h.Period.Start)
	if kind.DateShape == entity.DateRange {
		period = formatDate(h.Period.Start) + " to " + formatDate(h.Period.End)
	}
	details := "Period: " + nonEmpty(period, "—")
	if h.GSTNumber != "" {
		details += "   |   GST No: " + h.GSTNumber
	}
	if h.ReferenceNumber != "" {
		details += "   |   Supplier Receipt: " + h.ReferenceNumber
	}

	return row.New(16).Add(
		col.New(12).Add(
			text.New(kind.PartyLabel+" Details", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(h.PartyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(details, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

var tableCols = []struct {
	label string
	size  int
	align align.Type
}{
	{"Sr.", 1, align.Center},
	{"Item", 3, align.Left},
	{"Batch", 1, align.Left},
	{"Expiry", 1, align.Center},
	{"Qty", 1, align.Center},
	{"Rate", 1, align.Right},
	{"Disc%", 1, align.Center},
	{"GST%", 1, align.Center},
	{"Value", 2, align.Right},
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableCols))
	for _, c := range tableCols {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea.
func tableDetailRows(lines []entity.FinalizedLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		values := []string{
			strconv.Itoa(i + 1),
			l.ItemName,
			l.Batch,
			formatDate(l.ExpiryDate),
			strconv.Itoa(l.Quantity),
			money.Grouped(l.UnitValue),
			money.Percent(l.DiscountPercent),
			money.Percent(l.GSTPercentage),
			money.Grouped(l.LineValue),
		}
		cols := make([]core.Col, 0, len(values))
		for j, v := range values {
			cols = append(cols, col.New(tableCols[j].size).Add(text.New(v, props.Text{
				Size: 8, Align: tableCols[j].align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t entity.BillTotals) core.Row {
	entries := []struct {
		label string
		value string
	}{
		{"Total Items:", strconv.Itoa(t.TotalItems)},
		{"Total Quantity:", strconv.Itoa(t.TotalQuantity)},
		{"Total Amount:", rs(t.TotalAmount)},
		{"Discount:", rs(t.TotalDiscount)},
		{"SGST:", rs(t.SGST)},
		{"CGST:", rs(t.CGST)},
		{"IGST:", rs(t.IGST)},
	}
	labels := col.New(3)
	values := col.New(3)
	for i, e := range entries {
		top := float64(i) * 5
		labels.Add(text.New(e.label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(e.value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	netTop := float64(len(entries))*5 + 1
	labels.Add(text.New("NET AMOUNT:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: netTop,
	}))
	values.Add(text.New(rs(t.NetAmount), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: netTop,
	}))
	return row.New(netTop+8).Add(col.New(6), labels, values)
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

func footerRow(kind entity.BillKind) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("This is a computer generated "+kind.Title+" and does not require a signature.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// rs formatea rupias con prefijo textual; helvetica no incluye el glifo ₹.
func rs(d decimal.Decimal) string { return "Rs. " + money.Grouped(d) }

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

package billingapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/billing"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

// amount importe saliente. La API remota espera números JSON, no cadenas.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

// ── Formato de la API remota ──────────────────────────────────────────────────

// envelope respuesta {success, message, data}. Algunos endpoints devuelven el arreglo sin envolver.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// remediableWire registro devolvible. Los distintos endpoints nombran la cantidad de forma distinta.
type remediableWire struct {
	ID                        string           `json:"_id"`
	ItemName                  string           `json:"itemName"`
	Batch                     string           `json:"batch"`
	ExpiryDate                string           `json:"expiryDate"`
	PurchaseRate              decimal.Decimal  `json:"purchaseRate"`
	MRP                       decimal.Decimal  `json:"mrp"`
	GSTPercentage             decimal.Decimal  `json:"gstPercentage"`
	Discount                  decimal.Decimal  `json:"discount"`
	ReturnableQuantity        *decimal.Decimal `json:"returnableQuantity"`
	AvailableQuantity         *decimal.Decimal `json:"availableQuantity"`
	Quantity                  *decimal.Decimal `json:"quantity"`
	OriginalPurchaseQuantity  decimal.Decimal  `json:"originalPurchaseQuantity"`
	OriginalQuantity          decimal.Decimal  `json:"originalQuantity"`
	SoldQuantity              decimal.Decimal  `json:"soldQuantity"`
	ReturnedQuantity          decimal.Decimal  `json:"returnedQuantity"`
	CurrentInventoryQuantity  decimal.Decimal  `json:"currentInventoryQuantity"`
	OriginalSaleInvoiceNumber string           `json:"originalSaleInvoiceNumber"`
	PurchaseInvoiceNumber     string           `json:"purchaseInvoiceNumber"`
	InvoiceNumber             string           `json:"invoiceNumber"`
}

func (w remediableWire) toEntity() entity.RemediableItem {
	returnable := firstQuantity(w.ReturnableQuantity, w.AvailableQuantity, w.Quantity)
	original := w.OriginalQuantity
	if original.IsZero() {
		original = w.OriginalPurchaseQuantity
	}
	invoice := w.OriginalSaleInvoiceNumber
	if invoice == "" {
		invoice = w.PurchaseInvoiceNumber
	}
	if invoice == "" {
		invoice = w.InvoiceNumber
	}
	return entity.RemediableItem{
		ID:                       w.ID,
		ItemName:                 strings.TrimSpace(w.ItemName),
		Batch:                    strings.TrimSpace(w.Batch),
		ExpiryDate:               parseDate(w.ExpiryDate),
		PurchaseRate:             w.PurchaseRate,
		MRP:                      w.MRP,
		GSTPercentage:            w.GSTPercentage,
		SuggestedDiscount:        w.Discount,
		OriginalQuantity:         int(original.IntPart()),
		SoldOrReturnedQuantity:   int(w.SoldQuantity.Add(w.ReturnedQuantity).IntPart()),
		ReturnableQuantity:       returnable,
		CurrentInventoryQuantity: int(w.CurrentInventoryQuantity.IntPart()),
		OriginalInvoiceNumber:    invoice,
	}
}

func firstQuantity(candidates ...*decimal.Decimal) int {
	for _, c := range candidates {
		if c != nil {
			return int(c.IntPart())
		}
	}
	return 0
}

// parseDate acepta YYYY-MM-DD o RFC 3339; una fecha ilegible queda en cero (sin vencimiento conocido).
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if len(s) >= len(entity.DateLayout) {
		if t, err := time.Parse(entity.DateLayout, s[:len(entity.DateLayout)]); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

// lineWire línea enviada al crear la factura.
type lineWire struct {
	ItemName                  string `json:"itemName"`
	Batch                     string `json:"batch"`
	ExpiryDate                string `json:"expiryDate,omitempty"`
	OriginalSaleInvoiceNumber string `json:"originalSaleInvoiceNumber,omitempty"`
	SoldQuantity              int    `json:"soldQuantity"`
	ReturnableQuantity        int    `json:"returnableQuantity"`
	ReturnQuantity            int    `json:"returnQuantity"`
	Quantity                  int    `json:"quantity"`
	MRP                       amount `json:"mrp"`
	PurchaseRate              amount `json:"purchaseRate"`
	Discount                  amount `json:"discount"`
	GSTPercentage             amount `json:"gstPercentage"`
	GSTNo                     string `json:"gstNo,omitempty"`
	TotalAmount               amount `json:"totalAmount"`
	DiscountAmount            amount `json:"discountAmount"`
	GSTAmount                 amount `json:"gstAmount"`
	Amount                    amount `json:"amount"`
}

// createWire cuerpo de creación; cubre los nombres de campo de los cuatro endpoints.
type createWire struct {
	PartyName         string     `json:"partyName"`
	SupplierName      string     `json:"supplierName,omitempty"`
	Email             string     `json:"email"`
	Date              string     `json:"date,omitempty"`
	StartDate         string     `json:"startDate,omitempty"`
	EndDate           string     `json:"endDate,omitempty"`
	ReceiptNumber     string     `json:"receiptNumber,omitempty"`
	SaleInvoiceNumber string     `json:"saleInvoiceNumber,omitempty"`
	GSTNumber         string     `json:"gstNumber,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Items             []lineWire `json:"items"`
	TotalAmount       amount     `json:"totalAmount"`
	DiscountAmount    amount     `json:"discountAmount"`
	SGSTAmount        amount     `json:"sgstAmount"`
	CGSTAmount        amount     `json:"cgstAmount"`
	IGSTAmount        amount     `json:"igstAmount"`
	TotalGSTAmount    amount     `json:"totalGstAmount"`
	NetAmount         amount     `json:"netAmount"`
}

func newCreateWire(kind entity.BillKind, req returns.CreateBillRequest) createWire {
	h := req.Header
	body := createWire{
		PartyName:      h.PartyName,
		Email:          h.Email,
		ReceiptNumber:  h.ReferenceNumber,
		GSTNumber:      h.GSTNumber,
		Notes:          h.Notes,
		Items:          make([]lineWire, 0, len(req.Lines)),
		TotalAmount:    amount(req.Totals.TotalAmount),
		DiscountAmount: amount(req.Totals.TotalDiscount),
		SGSTAmount:     amount(req.Totals.SGST),
		CGSTAmount:     amount(req.Totals.CGST),
		IGSTAmount:     amount(req.Totals.IGST),
		TotalGSTAmount: amount(req.Totals.TotalGST),
		NetAmount:      amount(req.Totals.NetAmount),
	}
	if kind.DateShape == entity.DateRange {
		body.Date = formatDate(h.Period.Start)
		body.StartDate = formatDate(h.Period.Start)
		body.EndDate = formatDate(h.Period.End)
	} else {
		body.Date = formatDate(h.Period.Start)
	}
	if kind.PartyParam == "supplierName" {
		body.SupplierName = h.PartyName
	}
	if kind.PreassignNumber() {
		body.SaleInvoiceNumber = h.InvoiceNumber
	}
	for _, it := range req.Lines {
		if !it.Selected {
			continue
		}
		line := billing.ComputeLine(it.ReturnQuantity, it.UnitValue(kind.Valuation), it.DiscountPercent, it.GSTPercentage)
		body.Items = append(body.Items, lineWire{
			ItemName:                  it.ItemName,
			Batch:                     it.Batch,
			ExpiryDate:                formatDate(it.ExpiryDate),
			OriginalSaleInvoiceNumber: it.OriginalInvoiceNumber,
			SoldQuantity:              it.SoldOrReturnedQuantity,
			ReturnableQuantity:        it.ReturnableQuantity,
			ReturnQuantity:            it.ReturnQuantity,
			Quantity:                  it.ReturnQuantity,
			MRP:                       amount(it.MRP),
			PurchaseRate:              amount(it.PurchaseRate),
			Discount:                  amount(it.DiscountPercent),
			GSTPercentage:             amount(it.GSTPercentage),
			GSTNo:                     h.GSTNumber,
			TotalAmount:               amount(line.Gross),
			DiscountAmount:            amount(line.Discount),
			GSTAmount:                 amount(line.GST),
			Amount:                    amount(line.Net),
		})
	}
	return body
}

// createdWire respuesta de creación. El número llega con nombres distintos según el endpoint.
type createdWire struct {
	ID                  string              `json:"_id"`
	ReturnBillNumber    string              `json:"returnBillNumber"`
	ExpiryBillNumber    string              `json:"expiryBillNumber"`
	ReturnInvoiceNumber string              `json:"returnInvoiceNumber"`
	SaleInvoiceNumber   string              `json:"saleInvoiceNumber"`
	InvoiceNumber       string              `json:"invoiceNumber"`
	BillNumber          string              `json:"billNumber"`
	PartyName           string              `json:"partyName"`
	CreatedAt           string              `json:"createdAt"`
	TotalAmount         decimal.NullDecimal `json:"totalAmount"`
	DiscountAmount      decimal.NullDecimal `json:"discountAmount"`
	SGSTAmount          decimal.NullDecimal `json:"sgstAmount"`
	CGSTAmount          decimal.NullDecimal `json:"cgstAmount"`
	IGSTAmount          decimal.NullDecimal `json:"igstAmount"`
	TotalGSTAmount      decimal.NullDecimal `json:"totalGstAmount"`
	NetAmount           decimal.NullDecimal `json:"netAmount"`
}

func (w createdWire) number() string {
	for _, n := range []string{w.ReturnBillNumber, w.ExpiryBillNumber, w.ReturnInvoiceNumber, w.SaleInvoiceNumber, w.InvoiceNumber, w.BillNumber} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return ""
}

// applyTotals sobrescribe los totales locales con los del servidor cuando este los envía completos.
func (w createdWire) applyTotals(t entity.BillTotals) entity.BillTotals {
	if !w.NetAmount.Valid || !w.TotalAmount.Valid {
		return t
	}
	t.TotalAmount = w.TotalAmount.Decimal
	t.NetAmount = w.NetAmount.Decimal
	if w.DiscountAmount.Valid {
		t.TotalDiscount = w.DiscountAmount.Decimal
	}
	if w.TotalGSTAmount.Valid {
		t.TotalGST = w.TotalGSTAmount.Decimal
		t.SGST = t.TotalGST.Div(decimal.NewFromInt(2))
		t.CGST = t.TotalGST.Sub(t.SGST)
	}
	if w.SGSTAmount.Valid && w.CGSTAmount.Valid {
		t.SGST = w.SGSTAmount.Decimal
		t.CGST = w.CGSTAmount.Decimal
	}
	if w.IGSTAmount.Valid {
		t.IGST = w.IGSTAmount.Decimal
	}
	return t
}

// stockUpdateWire cuerpo de /api/inventory/update-batch-quantities.
// Las cantidades son negativas: la venta descuenta del inventario.
type stockUpdateWire struct {
	Updates []stockLineWire `json:"updates"`
}

type stockLineWire struct {
	Email    string `json:"email"`
	ItemName string `json:"itemName"`
	Batch    string `json:"batch"`
	Quantity int    `json:"quantity"`
}

func newStockUpdateWire(email string, lines []entity.FinalizedLine) stockUpdateWire {
	body := stockUpdateWire{Updates: make([]stockLineWire, 0, len(lines))}
	for _, l := range lines {
		body.Updates = append(body.Updates, stockLineWire{
			Email:    email,
			ItemName: l.ItemName,
			Batch:    l.Batch,
			Quantity: -l.Quantity,
		})
	}
	return body
}

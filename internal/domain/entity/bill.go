package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas intercambiado con la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Period rango de fechas o fecha única de la consulta.
type Period struct {
	Start time.Time
	End   time.Time // igual a Start cuando la forma es SingleDate
}

// SingleDay construye un Period de una sola fecha.
func SingleDay(d time.Time) Period {
	return Period{Start: d, End: d}
}

// IsZero indica que no se ha elegido fecha.
func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

// Session identidad de la cuenta que opera el flujo (email + token para la API remota).
type Session struct {
	UserID string
	Email  string
	Token  string
}

// BillHeader metadatos de la transacción.
type BillHeader struct {
	PartyName       string
	Email           string
	Period          Period
	InvoiceNumber   string // asignado por el servidor; inmutable una vez asignado
	GSTNumber       string
	ReferenceNumber string // número de recibo del proveedor (devolución de compra)
	Notes           string
}

// BillTotals agregados derivados; se recalculan, nunca se persisten de forma independiente.
// Los importes no están redondeados; usar Rounded() para presentación.
type BillTotals struct {
	TotalItems    int             `json:"totalItems"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalGST      decimal.Decimal `json:"totalGst"`
	SGST          decimal.Decimal `json:"sgst"`
	CGST          decimal.Decimal `json:"cgst"`
	IGST          decimal.Decimal `json:"igst"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// Rounded copia con importes a 2 decimales.
func (t BillTotals) Rounded() BillTotals {
	r := t
	r.TotalAmount = t.TotalAmount.Round(2)
	r.TotalDiscount = t.TotalDiscount.Round(2)
	r.TotalGST = t.TotalGST.Round(2)
	r.SGST = t.SGST.Round(2)
	r.CGST = t.CGST.Round(2)
	r.IGST = t.IGST.Round(2)
	r.NetAmount = t.NetAmount.Round(2)
	return r
}

// FinalizedLine línea tal como quedó en la factura creada.
type FinalizedLine struct {
	ItemName              string
	Batch                 string
	ExpiryDate            time.Time
	OriginalInvoiceNumber string
	Quantity              int
	UnitValue             decimal.Decimal
	DiscountPercent       decimal.Decimal
	GSTPercentage         decimal.Decimal
	LineValue             decimal.Decimal // cantidad × valor unitario
}

// FinalizedBill factura confirmada por el servidor. Sus totales son canónicos para el recibo.
type FinalizedBill struct {
	Kind      BillKindCode
	Number    string
	Header    BillHeader
	Lines     []FinalizedLine
	Totals    BillTotals
	CreatedAt time.Time
}

// Receipt documento imprimible generado para una factura.
type Receipt struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ArchivedReceipt recibo guardado para descargas posteriores.
type ArchivedReceipt struct {
	ID        string
	Email     string
	Kind      BillKindCode
	Number    string
	PartyName string
	NetAmount decimal.Decimal
	Filename  string
	Content   []byte
	CreatedAt time.Time
}

// BillEvent notificación en tiempo real emitida al crear una factura.
type BillEvent struct {
	Type      string          `json:"type"`
	Kind      BillKindCode    `json:"kind"`
	Email     string          `json:"email"`
	Number    string          `json:"number"`
	PartyName string          `json:"partyName"`
	NetAmount decimal.Decimal `json:"netAmount"`
	At        time.Time       `json:"at"`
}

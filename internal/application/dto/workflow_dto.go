package dto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateWorkflowRequest body para POST /api/workflows.
type CreateWorkflowRequest struct {
	Kind string `json:"kind" validate:"required,oneof=client_expiry supplier_expiry purchase_return sale"`
}

// QueryRequest parte y periodo. Los tipos de fecha única usan Date; los de rango StartDate/EndDate.
type QueryRequest struct {
	PartyName string `json:"party_name" validate:"required,max=200"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Period convierte las fechas del cuerpo. Date, si viene, tiene prioridad.
func (q QueryRequest) Period() (entity.Period, error) {
	if q.Date != "" {
		d, err := time.Parse(entity.DateLayout, q.Date)
		if err != nil {
			return entity.Period{}, domain.Validation(domain.ErrInvalidPeriod, "fecha inválida")
		}
		return entity.SingleDay(d), nil
	}
	var p entity.Period
	var err error
	if q.StartDate != "" {
		if p.Start, err = time.Parse(entity.DateLayout, q.StartDate); err != nil {
			return entity.Period{}, domain.Validation(domain.ErrInvalidPeriod, "fecha inicial inválida")
		}
	}
	if q.EndDate != "" {
		if p.End, err = time.Parse(entity.DateLayout, q.EndDate); err != nil {
			return entity.Period{}, domain.Validation(domain.ErrInvalidPeriod, "fecha final inválida")
		}
	}
	return p, nil
}

// AddItemRequest body para POST /api/workflows/:id/items.
type AddItemRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Batch    string `json:"batch" validate:"required"`
}

// UpdateItemRequest body para PATCH /api/workflows/:id/items/:key. Campos nil = sin cambio.
type UpdateItemRequest struct {
	ReturnQuantity  *int             `json:"return_quantity,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty" swaggertype:"string"`
	ToggleSelection bool             `json:"toggle_selection,omitempty"`
}

// HeaderRequest body para PUT /api/workflows/:id/header.
type HeaderRequest struct {
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ReferenceNumber *string `json:"reference_number,omitempty" validate:"omitempty,max=100"`
	GSTNumber       *string `json:"gst_number,omitempty" validate:"omitempty,max=20"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// WorkflowResponse estado visible de un flujo.
type WorkflowResponse struct {
	ID            string            `json:"id"`
	Kind          string            `json:"kind"`
	State         string            `json:"state"`
	Header        HeaderDTO         `json:"header"`
	Catalog       []RemediableDTO   `json:"catalog"`
	Items         []StagedLineDTO   `json:"items"`
	Totals        TotalsDTO         `json:"totals"`
	Submitting    bool              `json:"submitting"`
	Notice        string            `json:"notice,omitempty"`
	LastError     *WorkflowErrorDTO `json:"last_error,omitempty"`
	LastSubmitted string            `json:"last_submitted,omitempty"`
}

// HeaderDTO cabecera de la factura en construcción.
type HeaderDTO struct {
	PartyName       string `json:"party_name"`
	Email           string `json:"email"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	InvoiceNumber   string `json:"invoice_number,omitempty"`
	GSTNumber       string `json:"gst_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// RemediableDTO lote devolvible (o vendible) del catálogo.
type RemediableDTO struct {
	Key                   string          `json:"key"`
	ItemName              string          `json:"item_name"`
	Batch                 string          `json:"batch"`
	ExpiryDate            string          `json:"expiry_date,omitempty"`
	MRP                   decimal.Decimal `json:"mrp" swaggertype:"string"`
	PurchaseRate          decimal.Decimal `json:"purchase_rate" swaggertype:"string"`
	GSTPercentage         decimal.Decimal `json:"gst_percentage" swaggertype:"string"`
	ReturnableQuantity    int             `json:"returnable_quantity"`
	OriginalInvoiceNumber string          `json:"original_invoice_number,omitempty"`
	Expired               bool            `json:"expired"`
}

// StagedLineDTO línea de la lista en construcción.
type StagedLineDTO struct {
	Index           int             `json:"index"`
	Key             string          `json:"key"`
	ItemName        string          `json:"item_name"`
	Batch           string          `json:"batch"`
	ExpiryDate      string          `json:"expiry_date,omitempty"`
	UnitValue       decimal.Decimal `json:"unit_value" swaggertype:"string"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage" swaggertype:"string"`
	ReturnQuantity  int             `json:"return_quantity"`
	MaxQuantity     int             `json:"max_quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent" swaggertype:"string"`
	Selected        bool            `json:"selected"`
}

// TotalsDTO totales redondeados a 2 decimales.
type TotalsDTO struct {
	TotalItems    int             `json:"total_items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount" swaggertype:"string"`
	TotalDiscount decimal.Decimal `json:"total_discount" swaggertype:"string"`
	TotalGST      decimal.Decimal `json:"total_gst" swaggertype:"string"`
	SGST          decimal.Decimal `json:"sgst" swaggertype:"string"`
	CGST          decimal.Decimal `json:"cgst" swaggertype:"string"`
	IGST          decimal.Decimal `json:"igst" swaggertype:"string"`
	NetAmount     decimal.Decimal `json:"net_amount" swaggertype:"string"`
}

// WorkflowErrorDTO error estructurado del flujo.
type WorkflowErrorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// LoadResponse resultado de POST /api/workflows/:id/load.
type LoadResponse struct {
	Items      int              `json:"items"`
	Empty      bool             `json:"empty"`
	Superseded bool             `json:"superseded"`
	Workflow   WorkflowResponse `json:"workflow"`
}

// QuantityResponse cantidad efectivamente aplicada tras acotar.
type QuantityResponse struct {
	ReturnQuantity int              `json:"return_quantity"`
	Workflow       WorkflowResponse `json:"workflow"`
}

// SubmitResponse factura creada. ReceiptURL vacío si el recibo no se generó.
type SubmitResponse struct {
	Number     string             `json:"number"`
	Kind       string             `json:"kind"`
	PartyName  string             `json:"party_name"`
	CreatedAt  time.Time          `json:"created_at"`
	Totals     TotalsDTO          `json:"totals"`
	ReceiptURL string             `json:"receipt_url,omitempty"`
	Warnings   []WorkflowErrorDTO `json:"warnings,omitempty"`
}

// ReceiptSummary recibo archivado, sin el contenido.
type ReceiptSummary struct {
	Kind        string          `json:"kind"`
	Number      string          `json:"number"`
	PartyName   string          `json:"party_name"`
	NetAmount   decimal.Decimal `json:"net_amount" swaggertype:"string"`
	Filename    string          `json:"filename"`
	CreatedAt   time.Time       `json:"created_at"`
	DownloadURL string          `json:"download_url"`
}

// ReceiptListResponse página de recibos archivados.
type ReceiptListResponse struct {
	Items []ReceiptSummary `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ── Mapeo ─────────────────────────────────────────────────────────────────────

// EncodeItemKey clave ítem+lote apta para la ruta.
func EncodeItemKey(k entity.BatchKey) string {
	return base64.RawURLEncoding.EncodeToString([]byte(k))
}

// DecodeItemKey inversa de EncodeItemKey.
func DecodeItemKey(s string) (entity.BatchKey, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("clave de ítem inválida: %w", domain.ErrInvalidInput)
	}
	return entity.BatchKey(raw), nil
}

// ReceiptPath ruta de descarga de un recibo archivado.
func ReceiptPath(kind entity.BillKindCode, number string) string {
	return fmt.Sprintf("/api/receipts/%s/%s", kind, number)
}

// NewWorkflowResponse proyecta el snapshot del flujo. now decide qué lotes están vencidos.
func NewWorkflowResponse(id string, kind entity.BillKind, s returns.Snapshot, now time.Time) WorkflowResponse {
	out := WorkflowResponse{
		ID:            id,
		Kind:          string(s.Kind),
		State:         string(s.State),
		Header:        newHeaderDTO(s.Header),
		Catalog:       make([]RemediableDTO, 0, len(s.Catalog)),
		Items:         make([]StagedLineDTO, 0, len(s.Staging)),
		Totals:        NewTotalsDTO(s.Totals),
		Submitting:    s.Submitting,
		Notice:        s.Notice,
		LastSubmitted: s.LastSubmitted,
	}
	if s.LastError != nil {
		out.LastError = NewWorkflowErrorDTO(s.LastError)
	}
	for _, it := range s.Catalog {
		out.Catalog = append(out.Catalog, RemediableDTO{
			Key:                   EncodeItemKey(it.Key()),
			ItemName:              it.ItemName,
			Batch:                 it.Batch,
			ExpiryDate:            formatDate(it.ExpiryDate),
			MRP:                   it.MRP,
			PurchaseRate:          it.PurchaseRate,
			GSTPercentage:         it.GSTPercentage,
			ReturnableQuantity:    it.ReturnableQuantity,
			OriginalInvoiceNumber: it.OriginalInvoiceNumber,
			Expired:               it.ExpiredAt(now),
		})
	}
	for i, it := range s.Staging {
		out.Items = append(out.Items, StagedLineDTO{
			Index:           i,
			Key:             EncodeItemKey(it.Key()),
			ItemName:        it.ItemName,
			Batch:           it.Batch,
			ExpiryDate:      formatDate(it.ExpiryDate),
			UnitValue:       it.UnitValue(kind.Valuation),
			GSTPercentage:   it.GSTPercentage,
			ReturnQuantity:  it.ReturnQuantity,
			MaxQuantity:     it.ReturnableQuantity,
			DiscountPercent: it.DiscountPercent,
			Selected:        it.Selected,
		})
	}
	return out
}

// NewTotalsDTO totales redondeados para presentación.
func NewTotalsDTO(t entity.BillTotals) TotalsDTO {
	r := t.Rounded()
	return TotalsDTO{
		TotalItems:    r.TotalItems,
		TotalQuantity: r.TotalQuantity,
		TotalAmount:   r.TotalAmount,
		TotalDiscount: r.TotalDiscount,
		TotalGST:      r.TotalGST,
		SGST:          r.SGST,
		CGST:          r.CGST,
		IGST:          r.IGST,
		NetAmount:     r.NetAmount,
	}
}

// NewWorkflowErrorDTO proyecta un error estructurado.
func NewWorkflowErrorDTO(e *domain.WorkflowError) *WorkflowErrorDTO {
	return &WorkflowErrorDTO{Kind: string(e.Kind), Message: e.Error()}
}

// NewSubmitResponse proyecta el resultado del envío.
func NewSubmitResponse(res *returns.SubmitResult) SubmitResponse {
	b := res.Bill
	out := SubmitResponse{
		Number:    b.Number,
		Kind:      string(b.Kind),
		PartyName: b.Header.PartyName,
		CreatedAt: b.CreatedAt,
		Totals:    NewTotalsDTO(b.Totals),
	}
	if res.Receipt != nil {
		out.ReceiptURL = ReceiptPath(b.Kind, b.Number)
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, *NewWorkflowErrorDTO(w))
	}
	return out
}

// NewReceiptSummary proyecta un recibo archivado.
func NewReceiptSummary(r *entity.ArchivedReceipt) ReceiptSummary {
	return ReceiptSummary{
		Kind:        string(r.Kind),
		Number:      r.Number,
		PartyName:   r.PartyName,
		NetAmount:   r.NetAmount.Round(2),
		Filename:    r.Filename,
		CreatedAt:   r.CreatedAt,
		DownloadURL: ReceiptPath(r.Kind, r.Number),
	}
}

func newHeaderDTO(h entity.BillHeader) HeaderDTO {
	return HeaderDTO{
		PartyName:       h.PartyName,
		Email:           h.Email,
		StartDate:       formatDate(h.Period.Start),
		EndDate:         formatDate(h.Period.End),
		InvoiceNumber:   h.InvoiceNumber,
		GSTNumber:       h.GSTNumber,
		ReferenceNumber: h.ReferenceNumber,
		Notes:           h.Notes,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

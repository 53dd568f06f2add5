package returns

import (
	"context"

	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

// CreateBillRequest datos que el flujo envía a la API al crear la factura.
// Totals son los calculados localmente; la respuesta del servidor prevalece.
type CreateBillRequest struct {
	Header entity.BillHeader
	Lines  []entity.StagedLineItem
	Totals entity.BillTotals
}

// BillingAPIClient puerto hacia la API REST remota de facturación.
// Las llamadas son de un solo intento; los fallos se devuelven como *domain.WorkflowError
// (TRANSIENT o SERVER_REJECTION).
type BillingAPIClient interface {
	FetchRemediableItems(ctx context.Context, sess entity.Session, kind entity.BillKind, party string, period entity.Period) ([]entity.RemediableItem, error)
	CreateBill(ctx context.Context, sess entity.Session, kind entity.BillKind, req CreateBillRequest) (*entity.FinalizedBill, error)
	FetchNextInvoiceNumber(ctx context.Context, sess entity.Session, kind entity.BillKind) (string, error)
	UpdateBatchQuantities(ctx context.Context, sess entity.Session, kind entity.BillKind, lines []entity.FinalizedLine) error
}

// ReceiptRenderer genera el documento imprimible de una factura confirmada.
type ReceiptRenderer interface {
	Render(ctx context.Context, kind entity.BillKind, bill *entity.FinalizedBill) (*entity.Receipt, error)
}

// ReceiptArchive guarda los recibos generados para descargarlos más tarde.
type ReceiptArchive interface {
	Save(ctx context.Context, r *entity.ArchivedReceipt) error
	Get(ctx context.Context, email string, kind entity.BillKindCode, number string) (*entity.ArchivedReceipt, error)
	List(ctx context.Context, email string, limit, offset int) ([]*entity.ArchivedReceipt, error)
}

// EventPublisher canal en tiempo real para notificar facturas creadas.
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.BillEvent) error
}

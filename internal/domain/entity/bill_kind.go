package entity

import "fmt"

// Valuation campo con el que se valora cada línea.
type Valuation string

const (
	ValuationMRP          Valuation = "mrp"
	ValuationPurchaseRate Valuation = "purchase_rate"
)

// DateShape indica si la parte se consulta por rango de fechas o por una sola fecha.
type DateShape string

const (
	DateRange  DateShape = "range"
	SingleDate DateShape = "single"
)

// BillKindCode identificador estable de cada flujo.
type BillKindCode string

const (
	KindClientExpiry   BillKindCode = "client_expiry"
	KindSupplierExpiry BillKindCode = "supplier_expiry"
	KindPurchaseReturn BillKindCode = "purchase_return"
	KindSale           BillKindCode = "sale"
)

// Nombres de eventos en tiempo real.
const (
	EventInventoryUpdate     = "inventory_update"
	EventPurchaseBillCreated = "purchase_bill_created"
	EventSellBillCreated     = "sell_bill_created"
	EventReturnBillCreated   = "return_bill_created"
)

// BillKind parametriza el flujo genérico: valoración, forma de fecha, endpoints y plantilla de recibo.
type BillKind struct {
	Code            BillKindCode
	Title           string // encabezado del recibo
	PartyLabel      string // "Client", "Supplier", "Customer"
	Valuation       Valuation
	DateShape       DateShape
	RemediablePath  string // GET; "{email}" se sustituye por el email de la sesión
	PartyParam      string // nombre del query param con la parte
	CreatePath      string // POST
	NextNumberPath  string // POST; vacío si el número lo asigna el servidor al crear
	StockUpdatePath string // POST tras crear; vacío si el servidor ajusta el inventario por sí mismo
	ReceiptPrefix   string
	Event           string

	AutoStage         bool // al cargar, todos los ítems quedan en la lista y seleccionados
	RejectExpired     bool // no se pueden agregar lotes vencidos
	RequiresReference bool // exige número de recibo del proveedor
	RequiresGSTNumber bool // exige número GST de la parte
}

// PreassignNumber indica si el número de factura se pide antes del envío.
func (k BillKind) PreassignNumber() bool { return k.NextNumberPath != "" }

// UpdatesStock indica si tras crear la factura hay que descontar el inventario.
func (k BillKind) UpdatesStock() bool { return k.StockUpdatePath != "" }

// ReceiptFilename nombre determinista del PDF: <Prefijo>_<número>.pdf.
func (k BillKind) ReceiptFilename(number string) string {
	return fmt.Sprintf("%s_%s.pdf", k.ReceiptPrefix, number)
}

var billKinds = map[BillKindCode]BillKind{
	KindClientExpiry: {
		Code:           KindClientExpiry,
		Title:          "CLIENT EXPIRY RETURN BILL",
		PartyLabel:     "Client",
		Valuation:      ValuationMRP,
		DateShape:      DateRange,
		RemediablePath: "/api/expiry-bills/client-purchase-history",
		PartyParam:     "partyName",
		CreatePath:     "/api/expiry-bills/client",
		ReceiptPrefix:  "ClientExpiryReturn",
		Event:          EventReturnBillCreated,
	},
	KindSupplierExpiry: {
		Code:           KindSupplierExpiry,
		Title:          "SUPPLIER EXPIRY RETURN BILL",
		PartyLabel:     "Supplier",
		Valuation:      ValuationPurchaseRate,
		DateShape:      DateRange,
		RemediablePath: "/api/expiry-bills/party-expiry",
		PartyParam:     "partyName",
		CreatePath:     "/api/expiry-bills/supplier",
		ReceiptPrefix:  "SupplierExpiryReturn",
		Event:          EventReturnBillCreated,
		AutoStage:      true,
	},
	KindPurchaseReturn: {
		Code:              KindPurchaseReturn,
		Title:             "PURCHASE RETURN BILL",
		PartyLabel:        "Supplier",
		Valuation:         ValuationPurchaseRate,
		DateShape:         SingleDate,
		RemediablePath:    "/api/purchase-returns/returnable-quantities",
		PartyParam:        "supplierName",
		CreatePath:        "/api/purchase-returns/create",
		ReceiptPrefix:     "PurchaseReturn",
		Event:             EventReturnBillCreated,
		RejectExpired:     true,
		RequiresReference: true,
	},
	KindSale: {
		Code:              KindSale,
		Title:             "SALES INVOICE",
		PartyLabel:        "Customer",
		Valuation:         ValuationMRP,
		DateShape:         SingleDate,
		RemediablePath:    "/api/inventory/{email}",
		PartyParam:        "partyName",
		CreatePath:        "/api/bills/sale",
		NextNumberPath:    "/api/bills/next-invoice-number",
		StockUpdatePath:   "/api/inventory/update-batch-quantities",
		ReceiptPrefix:     "SalesInvoice",
		Event:             EventSellBillCreated,
		RequiresGSTNumber: true,
	},
}

// LookupBillKind devuelve la configuración de un tipo de factura.
func LookupBillKind(code BillKindCode) (BillKind, bool) {
	k, ok := billKinds[code]
	return k, ok
}

// BillKindCodes lista los tipos soportados en orden estable.
func BillKindCodes() []BillKindCode {
	return []BillKindCode{KindClientExpiry, KindSupplierExpiry, KindPurchaseReturn, KindSale}
}

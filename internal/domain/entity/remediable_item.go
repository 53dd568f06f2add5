package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/pkg/money"
)

// BatchKey identifica un lote dentro del alcance de una parte (ítem + lote, sin distinguir mayúsculas).
type BatchKey string

// batchKeySep separa ítem y lote; no aparece en textos reales.
const batchKeySep = "\x00"

// NewBatchKey construye la clave normalizada.
func NewBatchKey(itemName, batch string) BatchKey {
	return BatchKey(money.FoldKey(itemName) + batchKeySep + money.FoldKey(batch))
}

// String forma legible "ítem / lote" para mensajes.
func (k BatchKey) String() string {
	return strings.Replace(string(k), batchKeySep, " / ", 1)
}

// RemediableItem registro devuelto por el servidor con la cantidad que aún puede devolverse o venderse.
// Solo se lee; el servidor es la fuente de verdad.
type RemediableItem struct {
	ID                       string // id del servidor si lo envía (ej. _id)
	ItemName                 string
	Batch                    string
	ExpiryDate               time.Time
	PurchaseRate             decimal.Decimal
	MRP                      decimal.Decimal
	GSTPercentage            decimal.Decimal
	SuggestedDiscount        decimal.Decimal // descuento % sugerido por el servidor
	OriginalQuantity         int
	SoldOrReturnedQuantity   int
	ReturnableQuantity       int
	CurrentInventoryQuantity int
	OriginalInvoiceNumber    string // factura de venta/compra de origen
}

// Key clave ítem+lote.
func (r RemediableItem) Key() BatchKey {
	return NewBatchKey(r.ItemName, r.Batch)
}

// UnitValue precio unitario según la valoración del flujo.
func (r RemediableItem) UnitValue(v Valuation) decimal.Decimal {
	if v == ValuationPurchaseRate {
		return r.PurchaseRate
	}
	return r.MRP
}

// ExpiredAt indica si el lote venció antes del día de now.
func (r RemediableItem) ExpiredAt(now time.Time) bool {
	if r.ExpiryDate.IsZero() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return r.ExpiryDate.Before(today)
}

// StagedLineItem proyección editable de un RemediableItem incluida en la factura en construcción.
type StagedLineItem struct {
	RemediableItem
	ReturnQuantity  int
	DiscountPercent decimal.Decimal
	Selected        bool
}

// NewStagedLineItem crea la línea con la cantidad máxima devolvible y el descuento del servidor.
func NewStagedLineItem(item RemediableItem) StagedLineItem {
	return StagedLineItem{
		RemediableItem:  item,
		ReturnQuantity:  item.ReturnableQuantity,
		DiscountPercent: item.SuggestedDiscount,
		Selected:        true,
	}
}

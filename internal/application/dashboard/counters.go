// Package dashboard mantiene contadores ambientales alimentados por el canal en tiempo real.
//
// Los contadores solo consumen eventos; no tienen referencia a ningún flujo de facturación
// y usan su propio candado.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// Subscriber fuente de eventos en tiempo real.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan entity.BillEvent, error)
}

// KindCounter acumulado de un tipo de factura.
type KindCounter struct {
	Bills     int             `json:"bills"`
	NetAmount decimal.Decimal `json:"net_amount" swaggertype:"string"`
}

// Summary vista de los contadores de una cuenta.
type Summary struct {
	Email            string                              `json:"email"`
	SalesCount       int                                 `json:"sales_count"`
	ReturnsCount     int                                 `json:"returns_count"`
	PurchasesCount   int                                 `json:"purchases_count"`
	InventoryUpdates int                                 `json:"inventory_updates"`
	ByKind           map[entity.BillKindCode]KindCounter `json:"by_kind"`
	LastEventAt      *time.Time                          `json:"last_event_at,omitempty"`
}

type account struct {
	sales, returns, purchases, inventory int
	byKind                               map[entity.BillKindCode]KindCounter
	last                                 time.Time
}

// Counters contadores por cuenta (email).
type Counters struct {
	mu       sync.RWMutex
	accounts map[string]*account
	log      *logger.Logger
}

// NewCounters construye los contadores vacíos.
func NewCounters(log *logger.Logger) *Counters {
	if log == nil {
		log = logger.Nop()
	}
	return &Counters{accounts: make(map[string]*account), log: log.Named("dashboard")}
}

// Apply incorpora un evento.
func (c *Counters) Apply(ev entity.BillEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.accounts[ev.Email]
	if !ok {
		a = &account{byKind: make(map[entity.BillKindCode]KindCounter)}
		c.accounts[ev.Email] = a
	}
	switch ev.Type {
	case entity.EventSellBillCreated:
		a.sales++
	case entity.EventReturnBillCreated:
		a.returns++
	case entity.EventPurchaseBillCreated:
		a.purchases++
	case entity.EventInventoryUpdate:
		a.inventory++
	default:
		c.log.Debug().Str("event", ev.Type).Msg("evento ignorado")
		return
	}
	if ev.Kind != "" {
		k := a.byKind[ev.Kind]
		k.Bills++
		k.NetAmount = k.NetAmount.Add(ev.NetAmount)
		a.byKind[ev.Kind] = k
	}
	if ev.At.After(a.last) {
		a.last = ev.At
	}
}

// Summary copia de los contadores de una cuenta; vacía si no hubo eventos.
func (c *Counters) Summary(email string) Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := Summary{Email: email, ByKind: make(map[entity.BillKindCode]KindCounter)}
	a, ok := c.accounts[email]
	if !ok {
		return out
	}
	out.SalesCount = a.sales
	out.ReturnsCount = a.returns
	out.PurchasesCount = a.purchases
	out.InventoryUpdates = a.inventory
	for k, v := range a.byKind {
		out.ByKind[k] = v
	}
	if !a.last.IsZero() {
		last := a.last
		out.LastEventAt = &last
	}
	return out
}

// Run consume eventos hasta que ctx termine o la fuente se cierre.
func (c *Counters) Run(ctx context.Context, sub Subscriber) error {
	events, err := sub.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.Apply(ev)
		}
	}
}

// Package memory contiene adaptadores en proceso usados cuando no hay base de datos configurada.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

var _ returns.ReceiptArchive = (*ReceiptArchive)(nil)

type receiptKey struct {
	email  string
	kind   entity.BillKindCode
	number string
}

// ReceiptArchive archivo de recibos en memoria; se pierde al reiniciar.
type ReceiptArchive struct {
	mu    sync.RWMutex
	items map[receiptKey]*entity.ArchivedReceipt
}

// NewReceiptArchive construye el archivo vacío.
func NewReceiptArchive() *ReceiptArchive {
	return &ReceiptArchive{items: make(map[receiptKey]*entity.ArchivedReceipt)}
}

// Save guarda una copia. Un mismo (email, tipo, número) se sobrescribe.
func (a *ReceiptArchive) Save(_ context.Context, r *entity.ArchivedReceipt) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	cp.Content = append([]byte(nil), r.Content...)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.items[receiptKey{r.Email, r.Kind, r.Number}] = &cp
	return nil
}

// Get devuelve una copia del recibo o domain.ErrNotFound.
func (a *ReceiptArchive) Get(_ context.Context, email string, kind entity.BillKindCode, number string) (*entity.ArchivedReceipt, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.items[receiptKey{email, kind, number}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	cp.Content = append([]byte(nil), r.Content...)
	return &cp, nil
}

// List devuelve los recibos de la cuenta, más recientes primero, sin el contenido.
func (a *ReceiptArchive) List(_ context.Context, email string, limit, offset int) ([]*entity.ArchivedReceipt, error) {
	a.mu.RLock()
	var list []*entity.ArchivedReceipt
	for k, r := range a.items {
		if k.email != email {
			continue
		}
		cp := *r
		cp.Content = nil
		list = append(list, &cp)
	}
	a.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Number > list[j].Number
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if offset >= len(list) {
		return []*entity.ArchivedReceipt{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

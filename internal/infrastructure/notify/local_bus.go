package notify

import (
	"context"
	"sync"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/application/returns"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

var (
	_ returns.EventPublisher = (*LocalBus)(nil)
	_ dashboard.Subscriber   = (*LocalBus)(nil)
)

// LocalBus reparto en proceso, usado cuando no hay Redis. Un suscriptor lento pierde eventos
// en lugar de bloquear al publicador.
type LocalBus struct {
	mu   sync.Mutex
	subs map[chan entity.BillEvent]struct{}
}

// NewLocalBus construye el bus vacío.
func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[chan entity.BillEvent]struct{})}
}

// Publish entrega el evento a cada suscriptor con espacio disponible.
func (b *LocalBus) Publish(_ context.Context, ev entity.BillEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe registra un suscriptor; el canal se cierra cuando ctx termina.
func (b *LocalBus) Subscribe(ctx context.Context) (<-chan entity.BillEvent, error) {
	ch := make(chan entity.BillEvent, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

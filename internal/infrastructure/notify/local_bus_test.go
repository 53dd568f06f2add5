package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/internal/infrastructure/notify"
)

func TestLocalBus_EntregaYCierra(t *testing.T) {
	bus := notify.NewLocalBus()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), entity.BillEvent{Type: entity.EventSellBillCreated, Number: "INV1"}))

	select {
	case ev := <-events:
		assert.Equal(t, "INV1", ev.Number)
	case <-time.After(time.Second):
		t.Fatal("no llegó el evento")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, time.Second, time.Millisecond)
}

func TestLocalBus_AlimentaContadores(t *testing.T) {
	bus := notify.NewLocalBus()
	counters := dashboard.NewCounters(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = counters.Run(ctx, bus)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_ = bus.Publish(ctx, entity.BillEvent{Type: entity.EventReturnBillCreated, Kind: entity.KindClientExpiry, Email: "a@x.com"})
		return counters.Summary("a@x.com").ReturnsCount > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

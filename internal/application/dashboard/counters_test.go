package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

type chanSubscriber struct{ ch chan entity.BillEvent }

func (s chanSubscriber) Subscribe(context.Context) (<-chan entity.BillEvent, error) { return s.ch, nil }

func TestCounters_ApplyAcumulaPorCuenta(t *testing.T) {
	c := dashboard.NewCounters(nil)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	c.Apply(entity.BillEvent{Type: entity.EventReturnBillCreated, Kind: entity.KindClientExpiry, Email: "a@x.com", NetAmount: decimal.NewFromInt(224), At: at})
	c.Apply(entity.BillEvent{Type: entity.EventReturnBillCreated, Kind: entity.KindClientExpiry, Email: "a@x.com", NetAmount: decimal.NewFromInt(100), At: at.Add(time.Minute)})
	c.Apply(entity.BillEvent{Type: entity.EventSellBillCreated, Kind: entity.KindSale, Email: "a@x.com", NetAmount: decimal.NewFromInt(50), At: at})
	c.Apply(entity.BillEvent{Type: entity.EventSellBillCreated, Kind: entity.KindSale, Email: "b@x.com"})
	c.Apply(entity.BillEvent{Type: "desconocido", Email: "a@x.com"})

	s := c.Summary("a@x.com")
	assert.Equal(t, 2, s.ReturnsCount)
	assert.Equal(t, 1, s.SalesCount)
	assert.Equal(t, 2, s.ByKind[entity.KindClientExpiry].Bills)
	assert.True(t, decimal.NewFromInt(324).Equal(s.ByKind[entity.KindClientExpiry].NetAmount))
	require.NotNil(t, s.LastEventAt)
	assert.Equal(t, at.Add(time.Minute), *s.LastEventAt)

	assert.Equal(t, 0, c.Summary("nadie@x.com").SalesCount)
}

func TestCounters_RunConsumeHastaCerrar(t *testing.T) {
	c := dashboard.NewCounters(nil)
	ch := make(chan entity.BillEvent, 2)
	ch <- entity.BillEvent{Type: entity.EventInventoryUpdate, Email: "a@x.com"}
	ch <- entity.BillEvent{Type: entity.EventPurchaseBillCreated, Email: "a@x.com"}
	close(ch)

	require.NoError(t, c.Run(context.Background(), chanSubscriber{ch: ch}))

	s := c.Summary("a@x.com")
	assert.Equal(t, 1, s.InventoryUpdates)
	assert.Equal(t, 1, s.PurchasesCount)
}

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/domain/entity"
)

func TestForward_DecodificaYDescartaIlegibles(t *testing.T) {
	bus := NewRedisBusWithClient(nil, DefaultChannel, nil)
	msgs := make(chan *redis.Message, 3)
	out := make(chan entity.BillEvent, 3)

	msgs <- &redis.Message{Channel: DefaultChannel, Payload: "{no es json"}
	msgs <- &redis.Message{Channel: DefaultChannel, Payload: `{"type":"sell_bill_created","kind":"sale","email":"a@x.com","number":"INV1","netAmount":"224.5","at":"2024-03-01T10:00:00Z"}`}
	close(msgs)

	bus.forward(context.Background(), msgs, out)

	var got []entity.BillEvent
	for ev := range out {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, entity.EventSellBillCreated, got[0].Type)
	assert.Equal(t, entity.KindSale, got[0].Kind)
	assert.Equal(t, "INV1", got[0].Number)
	assert.True(t, decimal.RequireFromString("224.5").Equal(got[0].NetAmount))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got[0].At.UTC())
}

func TestForward_CancelarCierraLaSalida(t *testing.T) {
	bus := NewRedisBusWithClient(nil, DefaultChannel, nil)
	msgs := make(chan *redis.Message)
	out := make(chan entity.BillEvent)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		bus.forward(ctx, msgs, out)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward no terminó al cancelar el contexto")
	}
	_, open := <-out
	assert.False(t, open)
}

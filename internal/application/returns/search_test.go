package returns_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/application/returns"
)

func TestSearch_ScheduleReemplazaPendiente(t *testing.T) {
	s := returns.NewSearch(15 * time.Millisecond)
	var runs, last int32

	for i := int32(1); i <= 3; i++ {
		i := i
		s.Schedule(func(context.Context, uint64) {
			atomic.AddInt32(&runs, 1)
			atomic.StoreInt32(&last, i)
		})
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.Equal(t, int32(3), atomic.LoadInt32(&last))
}

func TestSearch_BeginCancelaLaCargaAnterior(t *testing.T) {
	s := returns.NewSearch(time.Millisecond)

	first, ctx1, cancel1 := s.Begin(context.Background())
	defer cancel1()
	second, _, cancel2 := s.Begin(context.Background())
	defer cancel2()

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.False(t, s.Current(first))
	assert.True(t, s.Current(second))
}

func TestSearch_CancelDescartaProgramada(t *testing.T) {
	s := returns.NewSearch(10 * time.Millisecond)
	var runs int32
	s.Schedule(func(context.Context, uint64) { atomic.AddInt32(&runs, 1) })
	s.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
}

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/internal/domain/entity"
	"github.com/jhoicas/pharmabill/internal/infrastructure/memory"
)

func TestReceiptArchive_SaveGetList(t *testing.T) {
	ctx := context.Background()
	a := memory.NewReceiptArchive()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, n := range []string{"R-1", "R-2", "R-3"} {
		require.NoError(t, a.Save(ctx, &entity.ArchivedReceipt{
			Email: "a@x.com", Kind: entity.KindClientExpiry, Number: n,
			Filename: "ClientExpiryReturn_" + n + ".pdf", Content: []byte("%PDF"),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, a.Save(ctx, &entity.ArchivedReceipt{Email: "b@x.com", Kind: entity.KindSale, Number: "S-1"}))

	got, err := a.Get(ctx, "a@x.com", entity.KindClientExpiry, "R-2")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got.Content)
	assert.NotEmpty(t, got.ID)

	list, err := a.List(ctx, "a@x.com", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "R-3", list[0].Number, "más reciente primero")
	assert.Nil(t, list[0].Content)

	list, err = a.List(ctx, "a@x.com", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReceiptArchive_OtraCuentaNoVe(t *testing.T) {
	a := memory.NewReceiptArchive()
	require.NoError(t, a.Save(context.Background(), &entity.ArchivedReceipt{Email: "a@x.com", Kind: entity.KindSale, Number: "S-1"}))

	_, err := a.Get(context.Background(), "b@x.com", entity.KindSale, "S-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

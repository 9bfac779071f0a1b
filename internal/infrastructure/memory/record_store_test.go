package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

func TestRecordStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore()

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	buf := []byte("hola")
	require.NoError(t, s.Put(ctx, "k", buf))
	buf[0] = 'X' // el store guarda su propia copia
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hola", string(v))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	v, _ = s.Get(ctx, "k")
	assert.Nil(t, v)
}

func TestSaleJournal_RecentMasNuevasPrimero(t *testing.T) {
	ctx := context.Background()
	j := NewSaleJournal()
	for _, n := range []string{"F-1", "F-2", "F-3"} {
		require.NoError(t, j.Append(ctx, entity.JournalEntry{InvoiceNumber: n, FinalTotal: decimal.NewFromInt(1), CompletedAt: time.Now()}))
	}

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "F-3", got[0].InvoiceNumber)
	assert.Equal(t, "F-2", got[1].InvoiceNumber)

	all, _ := j.Recent(ctx, 0)
	assert.Len(t, all, 3)
}

package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/memory"
)

// failingRecords envuelve el almacenamiento en memoria y permite simular fallos de escritura.
type failingRecords struct {
	*memory.RecordStore
	mu      sync.Mutex
	failPut bool
	failDel bool
}

var errDisk = errors.New("disco lleno")

func (f *failingRecords) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failPut
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.RecordStore.Put(ctx, key, value)
}

func (f *failingRecords) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDel
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.RecordStore.Delete(ctx, key)
}

func newStore(t *testing.T) (*cart.Store, *failingRecords) {
	t.Helper()
	rec := &failingRecords{RecordStore: memory.NewRecordStore()}
	return cart.NewStore(rec, zerolog.Nop()), rec
}

func product(id, price string) entity.Product {
	return entity.Product{ID: id, Name: "Leche", Brand: "Alpina", UnitPrice: d(price), DiscountPercentage: d("10"), Barcode: "7702001"}
}

func TestStore_AddLine_MismoProductoIncrementaCantidad(t *testing.T) {
	ctx := context.Background()
	s, rec := newStore(t)

	require.NoError(t, s.AddLine(ctx, product("p1", "10.00")))
	require.NoError(t, s.AddLine(ctx, product("p1", "10.00")))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].DiscountPercentage.Equal(d("10")))

	data, err := rec.Get(ctx, cart.RecordKey)
	require.NoError(t, err)
	stored, err := cart.DecodeRecord(data)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "p1", stored[0].ProductID)
	assert.Equal(t, 2, stored[0].Quantity)
	assert.True(t, stored[0].UnitPrice.Equal(lines[0].UnitPrice), "el registro refleja el carrito en memoria")
}

func TestStore_AddLine_SinIDEsInvalido(t *testing.T) {
	s, _ := newStore(t)

	err := s.AddLine(context.Background(), entity.Product{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.Len())
}

func TestStore_AddLine_ConservaOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	for _, id := range []string{"c", "a", "b", "a"} {
		require.NoError(t, s.AddLine(ctx, product(id, "1")))
	}

	ids := []string{}
	for _, l := range s.Lines() {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestStore_SetQuantity(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddLine(ctx, product("p1", "10")))

	require.NoError(t, s.SetQuantity(ctx, "p1", 5))
	assert.Equal(t, 5, s.Lines()[0].Quantity)

	// cantidades menores a 1 se ignoran
	require.NoError(t, s.SetQuantity(ctx, "p1", 0))
	require.NoError(t, s.SetQuantity(ctx, "p1", -3))
	assert.Equal(t, 5, s.Lines()[0].Quantity)

	// producto ausente: sin efecto
	require.NoError(t, s.SetQuantity(ctx, "otro", 2))
	assert.Equal(t, 1, s.Len())
}

func TestStore_RemoveLine_UltimaLineaBorraRegistro(t *testing.T) {
	ctx := context.Background()
	s, rec := newStore(t)
	require.NoError(t, s.AddLine(ctx, product("p1", "10")))
	require.NoError(t, s.AddLine(ctx, product("p2", "5")))

	require.NoError(t, s.RemoveLine(ctx, "p1"))
	require.NoError(t, s.RemoveLine(ctx, "no-existe"))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.RemoveLine(ctx, "p2"))
	assert.Equal(t, 0, s.Len())
	data, err := rec.Get(ctx, cart.RecordKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s, rec := newStore(t)
	require.NoError(t, s.AddLine(ctx, product("p1", "10")))

	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Lines())
	data, err := rec.Get(ctx, cart.RecordKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_FalloDeEscrituraNoAlteraEstado(t *testing.T) {
	ctx := context.Background()
	s, rec := newStore(t)
	require.NoError(t, s.AddLine(ctx, product("p1", "10")))
	before, _ := rec.Get(ctx, cart.RecordKey)

	rec.failPut = true
	err := s.AddLine(ctx, product("p2", "3"))
	require.ErrorIs(t, err, errDisk)
	err = s.SetQuantity(ctx, "p1", 9)
	require.ErrorIs(t, err, errDisk)

	rec.failDel = true
	require.ErrorIs(t, s.RemoveLine(ctx, "p1"), errDisk)
	require.ErrorIs(t, s.Clear(ctx), errDisk)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	after, _ := rec.RecordStore.Get(ctx, cart.RecordKey)
	assert.Equal(t, before, after)
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("restaura venta en curso", func(t *testing.T) {
		rec := memory.NewRecordStore()
		require.NoError(t, rec.Put(ctx, cart.RecordKey, []byte(
			`[{"productId":"p1","name":"Arroz","brand":"Diana","unitPrice":"2.50","quantity":3,"discountPercentage":0,"barcode":null}]`)))
		s := cart.NewStore(rec, zerolog.Nop())

		require.NoError(t, s.Load(ctx))

		lines := s.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
		assert.True(t, lines[0].UnitPrice.Equal(d("2.5")))
		assert.Empty(t, lines[0].Barcode)
	})

	t.Run("registro que no es arreglo se descarta", func(t *testing.T) {
		rec := memory.NewRecordStore()
		require.NoError(t, rec.Put(ctx, cart.RecordKey, []byte(`{"productId":"p1"}`)))
		s := cart.NewStore(rec, zerolog.Nop())

		require.NoError(t, s.Load(ctx))

		assert.Equal(t, 0, s.Len())
		data, _ := rec.Get(ctx, cart.RecordKey)
		assert.Nil(t, data, "el registro inválido se elimina")
	})

	t.Run("sin registro", func(t *testing.T) {
		s := cart.NewStore(memory.NewRecordStore(), zerolog.Nop())
		require.NoError(t, s.Load(ctx))
		assert.Equal(t, 0, s.Len())
	})
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	var got [][]entity.CartLine
	unsubscribe := s.Subscribe(func(lines []entity.CartLine) { got = append(got, lines) })

	require.NoError(t, s.AddLine(ctx, product("p1", "10")))
	require.NoError(t, s.SetQuantity(ctx, "p1", 1)) // sin cambio, no notifica
	require.NoError(t, s.Clear(ctx))
	unsubscribe()
	require.NoError(t, s.AddLine(ctx, product("p2", "10")))

	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Empty(t, got[1])
}

func TestStore_MutacionesConcurrentes(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddLine(ctx, product("p1", "1"))
		}()
	}
	wg.Wait()

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 50, s.Lines()[0].Quantity)
}

// Package cart contiene el carrito de la venta en curso: el Store (único dueño del
// estado, persistido en un registro durable) y el cálculo de totales.
package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

// Listener recibe una copia de las líneas después de cada mutación confirmada.
type Listener func(lines []entity.CartLine)

// Store es el único componente que muta el carrito. Las mutaciones se serializan
// con un mutex y cada una reescribe el registro durable completo antes de
// confirmarse en memoria: si la escritura falla, memoria y registro quedan como estaban.
type Store struct {
	mu        sync.Mutex
	records   repository.RecordStore
	log       zerolog.Logger
	lines     []entity.CartLine
	listeners map[int]Listener
	nextSubID int
}

// NewStore construye un carrito vacío sobre el almacenamiento dado. Llamar Load para
// restaurar una venta en curso.
func NewStore(records repository.RecordStore, log zerolog.Logger) *Store {
	return &Store{
		records:   records,
		log:       log.With().Str("component", "cart").Logger(),
		listeners: make(map[int]Listener),
	}
}

// Load restaura el carrito desde el registro durable. Un registro ausente o mal formado
// deja el carrito vacío (el mal formado además se elimina); solo los errores de lectura
// del almacenamiento se devuelven.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.records.Get(ctx, RecordKey)
	if err != nil {
		return fmt.Errorf("cart: leer registro: %w", err)
	}
	if len(data) == 0 {
		s.lines = nil
		return nil
	}
	lines, err := DecodeRecord(data)
	if err != nil {
		s.log.Debug().Err(err).Msg("registro de carrito descartado")
		s.lines = nil
		if delErr := s.records.Delete(ctx, RecordKey); delErr != nil {
			s.log.Warn().Err(delErr).Msg("no se pudo eliminar el registro descartado")
		}
		return nil
	}
	s.lines = lines
	return nil
}

// AddLine agrega el producto: si ya está en el carrito incrementa su cantidad en 1,
// si no agrega una línea con cantidad 1 y el descuento del producto.
func (s *Store) AddLine(ctx context.Context, p entity.Product) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return fmt.Errorf("%w: producto sin id", domain.ErrInvalidInput)
	}
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, bool) {
		if i := indexOf(lines, id); i >= 0 {
			lines[i].Quantity++
			return lines, true
		}
		return append(lines, entity.CartLine{
			ProductID:          id,
			Name:               p.Name,
			Brand:              p.Brand,
			UnitPrice:          nonNegative(p.UnitPrice),
			Quantity:           1,
			DiscountPercentage: clampPercentage(p.DiscountPercentage),
			Barcode:            p.Barcode,
		}), true
	})
}

// SetQuantity sobrescribe la cantidad de una línea. No hace nada si quantity < 1
// o si el producto no está en el carrito.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, bool) {
		i := indexOf(lines, productID)
		if i < 0 || lines[i].Quantity == quantity {
			return lines, false
		}
		lines[i].Quantity = quantity
		return lines, true
	})
}

// RemoveLine elimina la línea si existe.
func (s *Store) RemoveLine(ctx context.Context, productID string) error {
	return s.mutate(ctx, func(lines []entity.CartLine) ([]entity.CartLine, bool) {
		i := indexOf(lines, productID)
		if i < 0 {
			return lines, false
		}
		return append(lines[:i], lines[i+1:]...), true
	})
}

// Clear vacía el carrito y elimina el registro durable.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.records.Delete(ctx, RecordKey); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("cart: eliminar registro: %w", err)
	}
	s.lines = nil
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, nil)
	return nil
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (s *Store) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.lines)
}

// Len cantidad de líneas (no de unidades).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Subscribe registra un observador; la función devuelta lo da de baja.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// mutate aplica fn sobre una copia, persiste y confirma. Los observadores se notifican
// fuera del lock.
func (s *Store) mutate(ctx context.Context, fn func([]entity.CartLine) ([]entity.CartLine, bool)) error {
	s.mu.Lock()
	next, changed := fn(clone(s.lines))
	if !changed {
		s.mu.Unlock()
		return nil
	}
	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lines = next
	subs := s.subscribers()
	snapshot := clone(next)
	s.mu.Unlock()

	notify(subs, snapshot)
	return nil
}

// persist escribe el carrito completo; un carrito vacío elimina el registro.
func (s *Store) persist(ctx context.Context, lines []entity.CartLine) error {
	if len(lines) == 0 {
		if err := s.records.Delete(ctx, RecordKey); err != nil {
			return fmt.Errorf("cart: eliminar registro: %w", err)
		}
		return nil
	}
	data, err := EncodeRecord(lines)
	if err != nil {
		return fmt.Errorf("cart: serializar: %w", err)
	}
	if err := s.records.Put(ctx, RecordKey, data); err != nil {
		return fmt.Errorf("cart: escribir registro: %w", err)
	}
	return nil
}

func (s *Store) subscribers() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(subs []Listener, lines []entity.CartLine) {
	for _, fn := range subs {
		fn(clone(lines))
	}
}

func indexOf(lines []entity.CartLine, productID string) int {
	for i := range lines {
		if lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func clone(lines []entity.CartLine) []entity.CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}

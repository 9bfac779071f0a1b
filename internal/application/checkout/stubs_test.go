package checkout

import (
	"context"
	"sync"

	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

type stubCatalog struct {
	byBarcode map[string]entity.Product
}

func (c *stubCatalog) LookupBarcode(_ context.Context, code string) (entity.Product, error) {
	p, ok := c.byBarcode[code]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (c *stubCatalog) GetProduct(_ context.Context, id string) (entity.Product, error) {
	for _, p := range c.byBarcode {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrNotFound
}

func (c *stubCatalog) ListCategories(context.Context) ([]entity.Category, error) {
	return []entity.Category{{ID: "1", Name: "Lácteos"}}, nil
}

func (c *stubCatalog) ListCategoryProducts(_ context.Context, _ string) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(c.byBarcode))
	for _, p := range c.byBarcode {
		out = append(out, p)
	}
	return out, nil
}

// stubSales backend de ventas programable. Con gate != nil la llamada espera hasta que se cierre.
type stubSales struct {
	mu       sync.Mutex
	calls    int
	requests []ports.SaleRequest
	receipt  entity.SaleReceipt
	err      error
	gate     chan struct{}
	entered  chan struct{}
}

func (s *stubSales) SubmitSale(ctx context.Context, req ports.SaleRequest) (entity.SaleReceipt, error) {
	s.mu.Lock()
	s.calls++
	s.requests = append(s.requests, req)
	gate, entered := s.gate, s.entered
	receipt, err := s.receipt, s.err
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return receipt, err
}

func (s *stubSales) GetSale(context.Context, string) (entity.SaleRecord, error) {
	return entity.SaleRecord{}, domain.ErrNotFound
}

func (s *stubSales) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type countingEffects struct {
	mu    sync.Mutex
	beeps int
}

func (e *countingEffects) Beep() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beeps++
}

func (e *countingEffects) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beeps
}

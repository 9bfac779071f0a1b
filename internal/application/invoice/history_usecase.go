package invoice

import (
	"context"
	"fmt"

	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

// HistoryUseCase re-visualización de facturas de ventas ya registradas.
type HistoryUseCase struct {
	sales   ports.SalesGateway
	journal repository.SaleJournal
}

// NewHistoryUseCase journal puede ser nil (sin bitácora local).
func NewHistoryUseCase(sales ports.SalesGateway, journal repository.SaleJournal) *HistoryUseCase {
	return &HistoryUseCase{sales: sales, journal: journal}
}

// SaleInvoice obtiene la venta del backend y reconstruye su factura.
func (uc *HistoryUseCase) SaleInvoice(ctx context.Context, saleID string) (entity.Invoice, error) {
	if saleID == "" {
		return entity.Invoice{}, fmt.Errorf("%w: id de venta vacío", domain.ErrInvalidInput)
	}
	rec, err := uc.sales.GetSale(ctx, saleID)
	if err != nil {
		return entity.Invoice{}, err
	}
	if rec.InvoiceNumber == "" {
		return entity.Invoice{}, fmt.Errorf("venta %s sin factura: %w", saleID, domain.ErrNotFound)
	}
	return FromSale(rec), nil
}

// Journal últimas ventas de esta terminal, la más nueva primero.
func (uc *HistoryUseCase) Journal(ctx context.Context, limit int) ([]entity.JournalEntry, error) {
	if uc.journal == nil {
		return []entity.JournalEntry{}, nil
	}
	return uc.journal.Recent(ctx, limit)
}

package repository

import (
	"context"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// SaleJournal bitácora local de ventas completadas. Recent devuelve las más nuevas primero.
type SaleJournal interface {
	Append(ctx context.Context, e entity.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]entity.JournalEntry, error)
}

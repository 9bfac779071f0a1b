package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.SaleJournal = (*SaleJournal)(nil)

// SaleJournal bitácora en memoria; se pierde al reiniciar.
type SaleJournal struct {
	mu      sync.Mutex
	entries []entity.JournalEntry
}

func NewSaleJournal() *SaleJournal {
	return &SaleJournal{}
}

func (j *SaleJournal) Append(_ context.Context, e entity.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return nil
}

func (j *SaleJournal) Recent(_ context.Context, limit int) ([]entity.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if limit <= 0 || limit > len(j.entries) {
		limit = len(j.entries)
	}
	out := make([]entity.JournalEntry, 0, limit)
	for i := len(j.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

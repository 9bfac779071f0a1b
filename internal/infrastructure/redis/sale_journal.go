package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.SaleJournal = (*SaleJournal)(nil)

// journalCap cantidad máxima de ventas conservadas en la lista.
const journalCap = 500

var journalKey = key("journal")

// SaleJournal bitácora como lista Redis (LPUSH + LTRIM), la más nueva al inicio.
type SaleJournal struct {
	rdb redis.Cmdable
}

func NewSaleJournal(rdb redis.Cmdable) *SaleJournal {
	return &SaleJournal{rdb: rdb}
}

type journalJSON struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	SaleID        string          `json:"saleId,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	ItemCount     int             `json:"itemCount"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
	CashReceived  decimal.Decimal `json:"cashReceived"`
	Change        decimal.Decimal `json:"change"`
	CompletedAt   time.Time       `json:"completedAt"`
}

func encodeEntry(e entity.JournalEntry) ([]byte, error) {
	return json.Marshal(journalJSON{
		InvoiceNumber: e.InvoiceNumber,
		SaleID:        e.SaleID,
		PaymentMethod: string(e.PaymentMethod),
		ItemCount:     e.ItemCount,
		FinalTotal:    e.FinalTotal,
		CashReceived:  e.CashReceived,
		Change:        e.Change,
		CompletedAt:   e.CompletedAt.UTC(),
	})
}

func decodeEntry(data []byte) (entity.JournalEntry, error) {
	var j journalJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return entity.JournalEntry{}, err
	}
	return entity.JournalEntry{
		InvoiceNumber: j.InvoiceNumber,
		SaleID:        j.SaleID,
		PaymentMethod: entity.PaymentMethod(j.PaymentMethod),
		ItemCount:     j.ItemCount,
		FinalTotal:    j.FinalTotal,
		CashReceived:  j.CashReceived,
		Change:        j.Change,
		CompletedAt:   j.CompletedAt,
	}, nil
}

func (s *SaleJournal) Append(ctx context.Context, e entity.JournalEntry) error {
	data, err := encodeEntry(e)
	if err != nil {
		return fmt.Errorf("journal: serializar: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, journalKey, data)
		p.LTrim(ctx, journalKey, 0, journalCap-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("journal: lpush: %w", err)
	}
	return nil
}

func (s *SaleJournal) Recent(ctx context.Context, limit int) ([]entity.JournalEntry, error) {
	if limit <= 0 || limit > journalCap {
		limit = journalCap
	}
	raw, err := s.rdb.LRange(ctx, journalKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("journal: lrange: %w", err)
	}
	out := make([]entity.JournalEntry, 0, len(raw))
	for _, r := range raw {
		e, err := decodeEntry([]byte(r))
		if err != nil {
			continue // entrada ilegible: se omite
		}
		out = append(out, e)
	}
	return out, nil
}

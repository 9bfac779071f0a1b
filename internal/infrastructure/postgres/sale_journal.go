package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.SaleJournal = (*SaleJournalRepo)(nil)

// SaleJournalRepo bitácora de ventas en sale_journal. Los montos NUMERIC se leen
// directo a decimal.Decimal gracias al codec registrado en el pool.
type SaleJournalRepo struct {
	q Querier
}

func NewSaleJournalRepository(q Querier) *SaleJournalRepo {
	return &SaleJournalRepo{q: q}
}

// Append registra la venta. Un número de factura repetido no es error (reintento de registro).
func (r *SaleJournalRepo) Append(ctx context.Context, e entity.JournalEntry) error {
	query := `
		INSERT INTO sale_journal (invoice_number, sale_id, payment_method, item_count, final_total, cash_received, change_amount, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.InvoiceNumber, e.SaleID, string(e.PaymentMethod), e.ItemCount,
		e.FinalTotal, e.CashReceived, e.Change, e.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("insert sale_journal: %w", err)
	}
	return nil
}

func (r *SaleJournalRepo) Recent(ctx context.Context, limit int) ([]entity.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT invoice_number, sale_id, payment_method, item_count, final_total, cash_received, change_amount, completed_at
		FROM sale_journal ORDER BY completed_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sale_journal: %w", err)
	}
	defer rows.Close()

	var out []entity.JournalEntry
	for rows.Next() {
		var e entity.JournalEntry
		var method string
		if err := rows.Scan(&e.InvoiceNumber, &e.SaleID, &method, &e.ItemCount,
			&e.FinalTotal, &e.CashReceived, &e.Change, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan sale_journal: %w", err)
		}
		e.PaymentMethod = entity.PaymentMethod(method)
		out = append(out, e)
	}
	return out, rows.Err()
}

// isUniqueViolation indica un 23505 (factura ya registrada), también envuelto.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

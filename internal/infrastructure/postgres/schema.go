package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS durable_records (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS sale_journal (
	invoice_number TEXT PRIMARY KEY,
	sale_id        TEXT NOT NULL DEFAULT '',
	payment_method TEXT NOT NULL,
	item_count     INTEGER NOT NULL,
	final_total    NUMERIC(14,2) NOT NULL,
	cash_received  NUMERIC(14,2) NOT NULL DEFAULT 0,
	change_amount  NUMERIC(14,2) NOT NULL DEFAULT 0,
	completed_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sale_journal_completed_at ON sale_journal (completed_at DESC);`

// EnsureSchema crea las tablas de la terminal si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

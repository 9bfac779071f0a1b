package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// RecordStore registro durable en la tabla durable_records (payload JSONB).
type RecordStore struct {
	q Querier
}

// NewRecordStore construye el adaptador. Pasar pool o tx (Querier).
func NewRecordStore(q Querier) *RecordStore {
	return &RecordStore{q: q}
}

func (r *RecordStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT payload::text FROM durable_records WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}
	return payload, nil
}

// Put hace upsert; el valor debe ser JSON válido (la columna es JSONB).
func (r *RecordStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO durable_records (key, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	return nil
}

func (r *RecordStore) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM durable_records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/grocerymate-pos/internal/infrastructure/redis"
	"github.com/jhoicas/grocerymate-pos/pkg/config"
)

// storage adaptadores durables elegidos por STORAGE_DRIVER.
type storage struct {
	records repository.RecordStore
	journal repository.SaleJournal
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storage{
			records: infraredis.NewRecordStore(rdb),
			journal: infraredis.NewSaleJournal(rdb),
			close:   func() { _ = rdb.Close() },
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			records: postgres.NewRecordStore(pool),
			journal: postgres.NewSaleJournalRepository(pool),
			close:   pool.Close,
		}, nil

	case config.StorageMemory:
		return &storage{
			records: memory.NewRecordStore(),
			journal: memory.NewSaleJournal(),
			close:   func() {},
		}, nil
	}
	return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Storage.Driver)
}

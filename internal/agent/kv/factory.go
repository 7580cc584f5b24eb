package kv

import (
	"context"
	"fmt"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv/postgres"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv/sqlite"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Open создаёт хранилище слотов по настройкам storage.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverFile:
		s, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.Migrations, cfg.Postgres.QueryTimeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package storage

import (
	"context"
	"fmt"

	"corecrew/internal/platform/config"
	"corecrew/internal/platform/db"
)

// Open builds the KV backend selected by cfg.StorageBackend.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryKV(), nil
	case config.BackendFile:
		return NewFileKV(cfg.DataDir)
	case config.BackendRedis:
		return NewRedisKV(ctx, cfg.RedisURL, cfg.StoragePrefix)
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations failed: %w", err)
			}
		}
		return NewPostgresKV(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"carrental-portal/internal/logger"
	"carrental-portal/internal/storage/migrations"
)

// Open builds the backend selected by cfg and wraps it in an Adapter. The
// returned close function releases connections held by the backend.
func Open(ctx context.Context, cfg Config) (*Adapter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Type {
	case TypeMemory:
		logger.Info("Using in-memory store")
		return NewAdapter(NewMemoryBackend(), cfg.QuotaBytes), noop, nil

	case "", TypeFile:
		logger.Info("Using file store", "dir", cfg.Dir)
		backend, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return NewAdapter(backend, cfg.QuotaBytes), noop, nil

	case TypeRedis:
		logger.Info("Using redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		rdb := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: cfg.DialTimeout,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewAdapter(NewRedisBackend(rdb, cfg.RedisKeyPrefix), cfg.QuotaBytes), rdb.Close, nil

	case TypePostgres:
		logger.Info("Using postgres store")
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.Up(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewAdapter(NewPostgresBackend(db), cfg.QuotaBytes), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage type '%s' not supported", cfg.Type)
	}
}

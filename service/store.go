package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/ledger"
)

// OpenStore opens the blob backend named by cfg.Type.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (ledger.BlobStore, error) {
	switch cfg.Type {
	case "sqlite":
		s, err := ledger.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
		}
		return s, nil
	case "redis":
		s := ledger.NewRedisStore(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Client.Ping(pingCtx).Err(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return s, nil
	case "memory":
		return ledger.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"shop-admin/internal/config"
	"shop-admin/internal/db"
)

// OpenStore builds the TokenStore selected by cfg.Store. The returned close
// func releases whatever connection the backend holds.
func OpenStore(ctx context.Context, cfg config.TokenConfig) (TokenStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store {
	case "", config.StoreMemory:
		return NewMemoryStore(), noop, nil
	case config.StoreFile:
		return NewFileStore(cfg.Path), noop, nil
	case config.StoreSQLite, config.StoreMySQL:
		gdb, err := db.Open(cfg.Store, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewDBStore(gdb), sqlDB.Close, nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb, cfg.RedisKey, cfg.TTL), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store %q", cfg.Store)
	}
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/enrollment-eligibility/internal/config"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

// RowCache stores JSON-encoded query results under a key for a fixed TTL.
type RowCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}) error
	Close() error
}

type rowCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewRowCache(log *logger.Logger, cfg config.CacheConfig) (RowCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.TTL)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &rowCache{
		log:    log.With("client", "RedisRowCache"),
		rdb:    rdb,
		ttl:    cfg.TTL,
		prefix: strings.TrimSpace(cfg.KeyPrefix),
	}, nil
}

func (c *rowCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *rowCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("redis row cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("bad cached rows", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *rowCache) Set(ctx context.Context, key string, v interface{}) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis row cache not initialized")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *rowCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

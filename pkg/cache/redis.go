// Package cache provides the two caching layers used by the generation
// service: an in-process LRU for parsed domain templates, and an
// optional Redis layer for memoizing finished datasets by config hash.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"synthgen/internal/config"
)

// DatasetCache stores serialized generation output keyed by a digest of
// the GeneratorConfig that produced it, so repeat requests for the same
// config within the TTL window skip serialization. The generation
// pipeline still runs on every request.
type DatasetCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type redisDatasetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDatasetCache dials Redis per cfg and verifies connectivity with
// a ping, mirroring the teacher's RedisDB.NewRedisDB setup (dial timeouts,
// pool sizing, a startup ping). Returns nil, nil when caching is disabled
// (cfg.Host and cfg.URL both blank).
func NewRedisDatasetCache(cfg config.RedisConfig) (DatasetCache, error) {
	if cfg.URL == "" && cfg.Host == "" {
		return nil, nil
	}

	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.Database,
		}
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.MaxRetries > 0 {
		opt.MaxRetries = cfg.MaxRetries
	}
	opt.DialTimeout = 5 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisDatasetCache{client: client, ttl: ttl}, nil
}

func (c *redisDatasetCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *redisDatasetCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisDatasetCache) Close() error {
	return c.client.Close()
}

package cache

import (
	"testing"

	"synthgen/internal/config"
)

func TestNewRedisDatasetCache_DisabledWhenUnconfigured(t *testing.T) {
	c, err := NewRedisDatasetCache(config.RedisConfig{})
	if err != nil {
		t.Fatalf("expected no error for disabled cache, got %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil cache when redis is unconfigured")
	}
}

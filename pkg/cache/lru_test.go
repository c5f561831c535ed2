package cache

import (
	"testing"
	"time"
)

func TestTemplateCache_GetKnownTemplate(t *testing.T) {
	c, err := NewTemplateCache(4)
	if err != nil {
		t.Fatalf("NewTemplateCache: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cfg, ok := c.Get("telecom", now)
	if !ok {
		t.Fatalf("expected telecom template to be found")
	}
	if cfg.DomainType != "telecom" {
		t.Fatalf("unexpected domain type: %q", cfg.DomainType)
	}
}

func TestTemplateCache_UnknownNameMisses(t *testing.T) {
	c, err := NewTemplateCache(4)
	if err != nil {
		t.Fatalf("NewTemplateCache: %v", err)
	}
	_, ok := c.Get("nonexistent", time.Now())
	if ok {
		t.Fatalf("expected unknown template name to miss")
	}
}

func TestTemplateCache_RepeatedGetReturnsCachedValue(t *testing.T) {
	c, err := NewTemplateCache(4)
	if err != nil {
		t.Fatalf("NewTemplateCache: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first, _ := c.Get("iot", now)
	second, _ := c.Get("iot", now)
	if !first.TimeWindow.Start.Equal(second.TimeWindow.Start) {
		t.Fatalf("expected identical cached window, got %v vs %v", first.TimeWindow.Start, second.TimeWindow.Start)
	}
}

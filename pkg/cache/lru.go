package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	generator "synthgen/internal/core/domain/generator"
)

// TemplateCache memoizes GeneratorConfig values built by the domain
// template constructors, keyed by "domainType@windowStart" so the same
// template requested at different start times still produces distinct
// entries instead of stale windows.
type TemplateCache struct {
	cache *lru.Cache[string, generator.GeneratorConfig]
}

// NewTemplateCache builds an LRU-bounded template cache of the given
// size (spec's GenerationConfig.TemplateCacheSize).
func NewTemplateCache(size int) (*TemplateCache, error) {
	if size <= 0 {
		size = 16
	}
	c, err := lru.New[string, generator.GeneratorConfig](size)
	if err != nil {
		return nil, err
	}
	return &TemplateCache{cache: c}, nil
}

// Get returns the named template's config anchored at now, building and
// caching it on a miss. Reports false if name is not a known template.
func (t *TemplateCache) Get(name string, now time.Time) (generator.GeneratorConfig, bool) {
	key := name + "@" + now.Truncate(time.Minute).Format(time.RFC3339)
	if cfg, ok := t.cache.Get(key); ok {
		return cfg, true
	}

	build, ok := generator.Templates[name]
	if !ok {
		return generator.GeneratorConfig{}, false
	}
	cfg := build(now)
	t.cache.Add(key, cfg)
	return cfg, true
}

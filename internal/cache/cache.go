package cache

import (
	"context"
	"fmt"

	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// Store is the tag-addressed response cache. Entries are keyed by a cache
// tag plus a request key; invalidating a tag drops every entry under it at
// once without enumerating keys.
type Store interface {
	Get(ctx context.Context, tag domain.CacheTag, key string) ([]byte, bool, error)
	Set(ctx context.Context, tag domain.CacheTag, key string, payload []byte) error
	Invalidate(ctx context.Context, tags ...domain.CacheTag) error
	Healthy(ctx context.Context) error
}

// NewStore creates a cache store based on configuration.
// Memory mode keeps everything in-process and is the default.
// Redis mode shares the cache across instances.
func NewStore(cfg *config.CacheConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Mode {
	case "memory":
		return NewMemoryStore(cfg.TTLDuration()), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis address required for redis cache")
		}
		return NewRedisStore(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache mode: %s", cfg.Mode)
	}
}

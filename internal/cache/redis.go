package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// RedisStore implements Store on Redis so multiple gateway instances share
// one cache. Each tag has a version key; payload keys embed the version so
// a single INCR invalidates the whole tag. Orphaned payloads fall out via
// their TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed cache store
func NewRedisStore(cfg *config.CacheConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisStore{
		client: client,
		ttl:    cfg.TTLDuration(),
		logger: logger,
	}
}

func versionKey(tag domain.CacheTag) string {
	return fmt.Sprintf("tag:%s:v", tag)
}

func (s *RedisStore) payloadKey(ctx context.Context, tag domain.CacheTag, key string) (string, error) {
	version, err := s.client.Get(ctx, versionKey(tag)).Result()
	if err == redis.Nil {
		version = "0"
	} else if err != nil {
		return "", fmt.Errorf("failed to read tag version: %w", err)
	}
	return fmt.Sprintf("tag:%s:%s:%s", tag, version, key), nil
}

// Get returns the cached payload for the tag's current version, if any
func (s *RedisStore) Get(ctx context.Context, tag domain.CacheTag, key string) ([]byte, bool, error) {
	payloadKey, err := s.payloadKey(ctx, tag, key)
	if err != nil {
		return nil, false, err
	}
	payload, err := s.client.Get(ctx, payloadKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return payload, true, nil
}

// Set stores a payload under the tag's current version with the configured TTL
func (s *RedisStore) Set(ctx context.Context, tag domain.CacheTag, key string, payload []byte) error {
	payloadKey, err := s.payloadKey(ctx, tag, key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, payloadKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate bumps each tag's version key; payloads written under the old
// version are never read again and expire on their own
func (s *RedisStore) Invalidate(ctx context.Context, tags ...domain.CacheTag) error {
	for _, tag := range tags {
		version, err := s.client.Incr(ctx, versionKey(tag)).Result()
		if err != nil {
			return fmt.Errorf("failed to bump tag version: %w", err)
		}
		s.logger.Debug("cache tag invalidated",
			zap.String("tag", string(tag)),
			zap.String("version", strconv.FormatInt(version, 10)))
	}
	return nil
}

// Healthy pings the Redis server
func (s *RedisStore) Healthy(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

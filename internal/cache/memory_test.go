package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagAccounts, "list?page=1", []byte(`{"count":0}`)))

	payload, ok, err := store.Get(ctx, domain.TagAccounts, "list?page=1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"count":0}`), payload)
}

func TestMemoryStore_MissOnUnknownKey(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)

	_, ok, err := store.Get(context.Background(), domain.TagAccounts, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_KeysAreTagScoped(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagAccounts, "k", []byte("accounts")))
	require.NoError(t, store.Set(ctx, domain.TagBudgets, "k", []byte("budgets")))

	payload, ok, err := store.Get(ctx, domain.TagBudgets, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("budgets"), payload)
}

func TestMemoryStore_InvalidateOrphansEntries(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagAccounts, "k", []byte("v")))
	require.NoError(t, store.Set(ctx, domain.TagBudgets, "k", []byte("v")))
	require.NoError(t, store.Invalidate(ctx, domain.TagAccounts))

	_, ok, err := store.Get(ctx, domain.TagAccounts, "k")
	require.NoError(t, err)
	assert.False(t, ok, "invalidated tag should miss")

	_, ok, err = store.Get(ctx, domain.TagBudgets, "k")
	require.NoError(t, err)
	assert.True(t, ok, "untouched tag should still hit")
}

func TestMemoryStore_SetAfterInvalidateHits(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagCoupons, "k", []byte("old")))
	require.NoError(t, store.Invalidate(ctx, domain.TagCoupons))
	require.NoError(t, store.Set(ctx, domain.TagCoupons, "k", []byte("new")))

	payload, ok, err := store.Get(ctx, domain.TagCoupons, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), payload)
}

func TestMemoryStore_ExpiredEntriesMiss(t *testing.T) {
	store := cache.NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagCurrencies, "k", []byte("v")))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := store.Get(ctx, domain.TagCurrencies, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_SweepRemovesOrphanedEntries(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagAccounts, "orphaned", []byte("v")))
	require.NoError(t, store.Invalidate(ctx, domain.TagAccounts))
	require.NoError(t, store.Set(ctx, domain.TagAccounts, "live", []byte("v")))

	removed := store.Sweep()
	assert.Equal(t, 1, removed)

	_, ok, err := store.Get(ctx, domain.TagAccounts, "live")
	require.NoError(t, err)
	assert.True(t, ok, "sweep must not remove live entries")
}

func TestMemoryStore_SweepRemovesExpiredEntries(t *testing.T) {
	store := cache.NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagBudgets, "k", []byte("v")))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, store.Sweep())
}

func TestMemoryStore_SweepKeepsNeverInvalidatedTags(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.TagCurrencies, "k", []byte("v")))

	removed := store.Sweep()
	assert.Equal(t, 0, removed)

	_, ok, err := store.Get(ctx, domain.TagCurrencies, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidationSet_CouponsIncludeAccounts(t *testing.T) {
	tags := domain.InvalidationSet(domain.TagCoupons)
	assert.ElementsMatch(t, []domain.CacheTag{domain.TagCoupons, domain.TagAccounts}, tags)

	tags = domain.InvalidationSet(domain.TagBudgets)
	assert.ElementsMatch(t, []domain.CacheTag{domain.TagBudgets}, tags)
}

func TestNewStore_DefaultsToMemory(t *testing.T) {
	store, err := cache.NewStore(&config.CacheConfig{Mode: "memory", TTL: 60}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStore{}, store)
	assert.NoError(t, store.Healthy(context.Background()))
}

func TestNewStore_RejectsUnknownMode(t *testing.T) {
	_, err := cache.NewStore(&config.CacheConfig{Mode: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}

package jobs

import (
	"github.com/pocketledger/actions-api/internal/cache"
	"go.uber.org/zap"
)

// CacheSweepJobName is the name of the in-memory cache eviction job
const CacheSweepJobName = "cache_sweep"

// cacheSweepSchedule runs often enough that expired entries do not
// accumulate between invalidations
const cacheSweepSchedule = "@every 5m"

// RegisterCacheSweepJob registers an eviction pass for the in-memory
// cache store. The Redis store expires entries on its own, so the job
// is skipped for any other store implementation.
func RegisterCacheSweepJob(scheduler *Scheduler, store cache.Store, logger *zap.Logger) error {
	mem, ok := store.(*cache.MemoryStore)
	if !ok {
		return nil
	}

	return scheduler.AddJob(CacheSweepJobName, cacheSweepSchedule, func() error {
		if removed := mem.Sweep(); removed > 0 {
			logger.Debug("swept expired cache entries",
				zap.Int("removed", removed))
		}
		return nil
	})
}

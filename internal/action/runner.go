// Package action implements the gateway's server actions. Every action
// follows the same template: validate the input, call the core API with a
// static call configuration, invalidate the resource's cache tag on a
// successful mutation, and return the mapped payload. Each invocation is
// journalled.
package action

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/journal"
	"github.com/pocketledger/actions-api/internal/metrics"
	"github.com/pocketledger/actions-api/internal/storage"
	"github.com/pocketledger/actions-api/internal/upstream"
	"go.uber.org/zap"
)

// Runner holds the shared collaborators every action needs
type Runner struct {
	client   *upstream.Client
	cache    cache.Store
	journal  *journal.Service
	files    storage.Storage
	validate *validator.Validate
	logger   *zap.Logger

	// Static call configurations; chosen per action kind, never per request
	queryCfg    upstream.CallConfig
	mutationCfg upstream.CallConfig
	authCfg     upstream.CallConfig

	maxUploadBytes int64
}

// NewRunner creates an action runner from configuration
func NewRunner(cfg *config.Config, client *upstream.Client, store cache.Store, journalSvc *journal.Service, files storage.Storage, logger *zap.Logger) *Runner {
	return &Runner{
		client:   client,
		cache:    store,
		journal:  journalSvc,
		files:    files,
		validate: validator.New(),
		logger:   logger,
		queryCfg: upstream.CallConfig{
			Timeout:          cfg.Upstream.QueryTimeoutDuration(),
			MaxRetries:       cfg.Upstream.QueryRetries,
			ValidateResponse: cfg.Upstream.ValidateResponses,
		},
		mutationCfg: upstream.CallConfig{
			Timeout:          cfg.Upstream.MutationTimeoutDuration(),
			MaxRetries:       cfg.Upstream.MutationRetries,
			ValidateResponse: cfg.Upstream.ValidateResponses,
		},
		authCfg: upstream.CallConfig{
			Timeout: cfg.Upstream.AuthTimeoutDuration(),
			// Token calls are never retried: a replayed credential check
			// can trip upstream lockouts
			MaxRetries:       0,
			ValidateResponse: cfg.Upstream.ValidateResponses,
		},
		maxUploadBytes: cfg.Storage.MaxUploadSizeMB * 1024 * 1024,
	}
}

// op identifies one action for journalling and error wrapping
type op struct {
	resource string
	action   string
	endpoint string
	method   string
}

// record journals one invocation and updates metrics
func (r *Runner) record(ctx context.Context, o op, outcome, detail string, start time.Time) {
	duration := time.Since(start)
	metrics.RecordActionRun(o.resource, o.action, outcome, duration)
	r.journal.Record(ctx, journal.Entry{
		Action:   o.action,
		Resource: o.resource,
		Endpoint: o.endpoint,
		Method:   o.method,
		Outcome:  outcome,
		Detail:   detail,
		Duration: duration,
	})
}

// checkInput validates the action input. A nil input skips validation.
func (r *Runner) checkInput(ctx context.Context, o op, input interface{}, start time.Time) error {
	if input == nil {
		return nil
	}
	if err := r.validate.Struct(input); err != nil {
		verr := newValidationError(err)
		r.record(ctx, o, domain.OutcomeValidationFailed, verr.Error(), start)
		return verr
	}
	return nil
}

// query runs a read action through the tag cache. The key must capture
// every request parameter that shapes the response.
func query[T any](ctx context.Context, r *Runner, o op, tag domain.CacheTag, key string, input interface{}, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	if err := r.checkInput(ctx, o, input, start); err != nil {
		return zero, err
	}

	if payload, ok, err := r.cache.Get(ctx, tag, key); err != nil {
		r.logger.Warn("cache read failed",
			zap.String("tag", string(tag)),
			zap.Error(err))
	} else if ok {
		var out T
		if err := json.Unmarshal(payload, &out); err == nil {
			metrics.RecordCacheLookup(string(tag), true)
			r.record(ctx, o, domain.OutcomeSuccess, "cache hit", start)
			return out, nil
		}
		r.logger.Warn("discarding undecodable cache entry",
			zap.String("tag", string(tag)),
			zap.Error(err))
	}
	metrics.RecordCacheLookup(string(tag), false)

	out, err := fetch(ctx)
	if err != nil {
		aerr := newActionError(o.endpoint, o.method, err)
		r.record(ctx, o, domain.OutcomeExecutionFailed, aerr.Error(), start)
		return zero, aerr
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := r.cache.Set(ctx, tag, key, payload); err != nil {
			r.logger.Warn("cache write failed",
				zap.String("tag", string(tag)),
				zap.Error(err))
		}
	}

	r.record(ctx, o, domain.OutcomeSuccess, "", start)
	return out, nil
}

// mutate runs a write action and invalidates the resource's tag set on
// success
func mutate[T any](ctx context.Context, r *Runner, o op, tag domain.CacheTag, input interface{}, call func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	if err := r.checkInput(ctx, o, input, start); err != nil {
		return zero, err
	}

	out, err := call(ctx)
	if err != nil {
		aerr := newActionError(o.endpoint, o.method, err)
		r.record(ctx, o, domain.OutcomeExecutionFailed, aerr.Error(), start)
		return zero, aerr
	}

	r.invalidate(ctx, tag)
	r.record(ctx, o, domain.OutcomeSuccess, "", start)
	return out, nil
}

// call runs an action with no caching and no invalidation; used for the
// auth endpoints
func call[T any](ctx context.Context, r *Runner, o op, input interface{}, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	if err := r.checkInput(ctx, o, input, start); err != nil {
		return zero, err
	}

	out, err := fn(ctx)
	if err != nil {
		aerr := newActionError(o.endpoint, o.method, err)
		r.record(ctx, o, domain.OutcomeExecutionFailed, aerr.Error(), start)
		return zero, aerr
	}

	r.record(ctx, o, domain.OutcomeSuccess, "", start)
	return out, nil
}

// invalidate drops the tag and its dependents; failures are logged, never
// surfaced, since the mutation itself already succeeded
func (r *Runner) invalidate(ctx context.Context, tag domain.CacheTag) {
	tags := domain.InvalidationSet(tag)
	if err := r.cache.Invalidate(ctx, tags...); err != nil {
		r.logger.Error("cache invalidation failed",
			zap.String("tag", string(tag)),
			zap.Error(err))
	}
}

// listKey builds the cache key for a list read
func listKey(path string, opts domain.ListOptions) string {
	params := upstream.ListParams{
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Search:   opts.Search,
		Ordering: opts.Ordering,
	}
	return path + "?" + params.Query().Encode()
}

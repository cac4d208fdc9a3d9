package jobs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/jobs"
	"github.com/pocketledger/actions-api/internal/journal"
	"github.com/pocketledger/actions-api/internal/storage"
	"github.com/pocketledger/actions-api/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeCore counts requests per method and path, like the action tests do.
type fakeCore struct {
	mu      sync.Mutex
	calls   map[string]int
	handler http.HandlerFunc
}

func (f *fakeCore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()
	f.handler(w, r)
}

func (f *fakeCore) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

type fixture struct {
	runner  *action.Runner
	core    *fakeCore
	journal *journal.Service
	db      *gorm.DB
	store   cache.Store
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()

	core := &fakeCore{calls: make(map[string]int), handler: handler}
	srv := httptest.NewServer(core)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:         srv.URL,
			QueryTimeout:    2,
			MutationTimeout: 2,
			AuthTimeout:     2,
		},
		Cache: config.CacheConfig{Mode: "memory", TTL: 60},
		Storage: config.StorageConfig{
			Mode:            "local",
			LocalBasePath:   t.TempDir(),
			MaxUploadSizeMB: 1,
		},
	}

	logger := zap.NewNop()

	client, err := upstream.NewClient(&cfg.Upstream, logger)
	require.NoError(t, err)

	store, err := cache.NewStore(&cfg.Cache, logger)
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ActionRecord{}))

	files, err := storage.NewStorage(&cfg.Storage, logger)
	require.NoError(t, err)

	journalSvc := journal.NewService(journal.NewRepository(db), logger)
	runner := action.NewRunner(cfg, client, store, journalSvc, files, logger)

	return &fixture{runner: runner, core: core, journal: journalSvc, db: db, store: store}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func wireWebhook(id uuid.UUID, active bool) map[string]interface{} {
	return map[string]interface{}{
		"id":         id.String(),
		"url":        "https://hooks.example.com/" + id.String(),
		"events":     []string{"account.updated"},
		"is_active":  active,
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func wireDelivery(id, webhookID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":         id.String(),
		"webhook_id": webhookID.String(),
		"event":      "account.updated",
		"status":     status,
		"attempts":   3,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func paginated(results ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"count":   len(results),
		"next":    nil,
		"results": results,
	}
}

func TestWebhookRetryJob_RetriesFailedDeliveriesUpToBatchCap(t *testing.T) {
	activeID := uuid.New()
	inactiveID := uuid.New()
	deliveries := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/webhooks/":
			writeJSON(w, http.StatusOK, paginated(
				wireWebhook(activeID, true),
				wireWebhook(inactiveID, false),
			))
		case strings.HasSuffix(r.URL.Path, "/deliveries/"):
			var results []interface{}
			for _, d := range deliveries {
				results = append(results, wireDelivery(d, activeID, domain.DeliveryStatusFailed))
			}
			writeJSON(w, http.StatusOK, paginated(results...))
		case strings.HasSuffix(r.URL.Path, "/retry/"):
			writeJSON(w, http.StatusOK, wireDelivery(uuid.New(), activeID, domain.DeliveryStatusPending))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	job := jobs.NewWebhookRetryJob(f.runner, zap.NewNop(), 2)
	require.NoError(t, job.Run())

	retries := 0
	for _, d := range deliveries {
		retries += f.core.count(http.MethodPost,
			"/webhooks/"+activeID.String()+"/deliveries/"+d.String()+"/retry/")
	}
	assert.Equal(t, 2, retries, "batch cap must bound retries per sweep")
	assert.Equal(t, 0, f.core.count(http.MethodGet, "/webhooks/"+inactiveID.String()+"/deliveries/"),
		"inactive webhooks are skipped")
}

func TestWebhookRetryJob_SurvivesIndividualRetryFailures(t *testing.T) {
	webhookID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/webhooks/":
			writeJSON(w, http.StatusOK, paginated(wireWebhook(webhookID, true)))
		case strings.HasSuffix(r.URL.Path, "/deliveries/"):
			writeJSON(w, http.StatusOK, paginated(
				wireDelivery(first, webhookID, domain.DeliveryStatusFailed),
				wireDelivery(second, webhookID, domain.DeliveryStatusFailed),
			))
		case strings.Contains(r.URL.Path, first.String()):
			writeJSON(w, http.StatusConflict, map[string]string{"detail": "Delivery already queued."})
		case strings.HasSuffix(r.URL.Path, "/retry/"):
			writeJSON(w, http.StatusOK, wireDelivery(uuid.New(), webhookID, domain.DeliveryStatusPending))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	job := jobs.NewWebhookRetryJob(f.runner, zap.NewNop(), 10)
	require.NoError(t, job.Run(), "one broken delivery must not fail the sweep")

	assert.Equal(t, 1, f.core.count(http.MethodPost,
		"/webhooks/"+webhookID.String()+"/deliveries/"+second.String()+"/retry/"))
}

func TestCurrencyRefreshJob_DropsAndRewarmsCatalog(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, paginated(map[string]interface{}{
			"code":           "NOK",
			"name":           "Norwegian Krone",
			"symbol":         "kr",
			"decimal_places": 2,
		}))
	})
	ctx := context.Background()

	_, err := f.runner.ListCurrencies(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.core.count(http.MethodGet, "/currencies/"))

	job := jobs.NewCurrencyRefreshJob(f.runner, zap.NewNop())
	require.NoError(t, job.Run())
	assert.Equal(t, 2, f.core.count(http.MethodGet, "/currencies/"), "refresh must bypass the cached catalog")

	// The warmed copy serves subsequent reads
	_, err = f.runner.ListCurrencies(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.core.count(http.MethodGet, "/currencies/"))
}

func TestJournalPruneJob_RemovesRowsPastRetention(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ctx := context.Background()

	f.journal.Record(ctx, journal.Entry{Action: "accounts.list", Resource: "accounts", Outcome: domain.OutcomeSuccess})
	require.NoError(t, f.db.Model(&domain.ActionRecord{}).
		Where("1 = 1").
		Update("created_at", time.Now().UTC().Add(-40*24*time.Hour)).Error)
	f.journal.Record(ctx, journal.Entry{Action: "accounts.get", Resource: "accounts", Outcome: domain.OutcomeSuccess})

	job := jobs.NewJournalPruneJob(f.journal, zap.NewNop(), 30*24*time.Hour)
	require.NoError(t, job.Run())

	var count int64
	require.NoError(t, f.db.Model(&domain.ActionRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterCacheSweepJob(t *testing.T) {
	t.Run("registers for the memory store", func(t *testing.T) {
		s := jobs.NewScheduler(zap.NewNop())
		store := cache.NewMemoryStore(time.Minute)

		require.NoError(t, jobs.RegisterCacheSweepJob(s, store, zap.NewNop()))
		assert.Contains(t, s.GetJobNames(), jobs.CacheSweepJobName)
	})

	t.Run("skipped for other stores", func(t *testing.T) {
		s := jobs.NewScheduler(zap.NewNop())

		require.NoError(t, jobs.RegisterCacheSweepJob(s, nil, zap.NewNop()))
		assert.Empty(t, s.GetJobNames())
	})
}

package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/http/handler"
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

// newTestRouter wires an account handler against a scripted core API.
func newTestRouter(t *testing.T, coreHandler http.HandlerFunc) chi.Router {
	t.Helper()

	srv := httptest.NewServer(coreHandler)
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
	files, err := storage.NewStorage(&cfg.Storage, logger)
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ActionRecord{}))

	journalSvc := journal.NewService(journal.NewRepository(db), logger)
	actions := action.NewRunner(cfg, client, store, journalSvc, files, logger)
	h := handler.NewAccountHandler(actions, logger)

	r := chi.NewRouter()
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Get("/{id}", h.GetAccount)
		r.Put("/{id}", h.UpdateAccount)
		r.Patch("/{id}", h.PatchAccount)
		r.Delete("/{id}", h.DeleteAccount)
	})
	return r
}

func accountJSON(id uuid.UUID) string {
	now := time.Now().UTC().Format(time.RFC3339)
	return `{"id":"` + id.String() + `","name":"Checking","type_id":1,"currency":"NOK","balance":"100.00","created_at":"` + now + `","updated_at":"` + now + `"}`
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAccountHandler_List(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":1,"results":[` + accountJSON(uuid.New()) + `]}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?page=1&pageSize=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page domain.Paginated[domain.AccountDTO]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Checking", page.Items[0].Name)
}

func TestAccountHandler_Get_InvalidUUID(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for a malformed ID")
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, domain.ErrorTypeBadRequest, apiErr.Type)
	assert.Contains(t, apiErr.Detail, "UUID")
}

func TestAccountHandler_Create(t *testing.T) {
	id := uuid.New()
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(accountJSON(id)))
	})

	body := `{"name":"Checking","typeId":1,"currency":"NOK"}`
	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var account domain.AccountDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, id, account.ID)
}

func TestAccountHandler_Create_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called for invalid input")
	})

	body := `{"name":"","typeId":0,"currency":"XX"}`
	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "name")
	assert.Contains(t, apiErr.Errors, "typeId")
	assert.Contains(t, apiErr.Errors, "currency")
}

func TestAccountHandler_Create_MalformedBody(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeAPIError(t, rec).Detail, "Invalid request body")
}

func TestAccountHandler_Get_UpstreamNotFoundPassesThrough(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, domain.ErrorTypeNotFound, apiErr.Type)
	assert.Equal(t, "Not found.", apiErr.Detail)
}

func TestAccountHandler_Get_UpstreamOutageBecomesBadGateway(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, domain.ErrorTypeUpstream, apiErr.Type)
}

func TestAccountHandler_Delete(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/accounts/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestAccountHandler_Patch(t *testing.T) {
	id := uuid.New()
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var patch map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, "Renamed", patch["name"])
		assert.NotContains(t, patch, "type_id", "unset patch fields must be omitted")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(accountJSON(id)))
	})

	req := httptest.NewRequest(http.MethodPatch, "/accounts/"+id.String(), strings.NewReader(`{"name":"Renamed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

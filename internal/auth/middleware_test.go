package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware() *auth.Middleware {
	cfg := &config.Config{
		Auth:   config.AuthConfig{Secret: testSecret},
		ApiKey: config.ApiKeyConfig{Value: "admin-key"},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func captureUser(t *testing.T) (http.Handler, **auth.UserContext) {
	var captured *auth.UserContext
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userCtx, ok := auth.FromContext(r.Context()); ok {
			captured = userCtx
		}
		w.WriteHeader(http.StatusOK)
	})
	return h, &captured
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	next, captured := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, userID, (*captured).UserID)
	assert.False(t, (*captured).IsAdmin)
}

func TestAuthenticate_ValidAPIKey(t *testing.T) {
	next, captured := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/records", nil)
	req.Header.Set("x-api-key", "admin-key")
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.True(t, (*captured).IsAdmin)
	assert.Equal(t, uuid.Nil, (*captured).UserID)
}

func TestAuthenticate_InvalidAPIKey(t *testing.T) {
	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredBearerToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newTestMiddleware().Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_EmptyConfiguredKeyNeverMatches(t *testing.T) {
	cfg := &config.Config{
		Auth:   config.AuthConfig{Secret: testSecret},
		ApiKey: config.ApiKeyConfig{Value: ""},
	}
	m := auth.NewMiddleware(cfg, zap.NewNop())

	next, _ := captureUser(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("x-api-key", "")
	rec := httptest.NewRecorder()

	// An empty header falls through to bearer auth, which also fails
	m.Authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	m := newTestMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/records", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{IsAdmin: true})
		rec := httptest.NewRecorder()

		m.RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/records", nil)
		ctx := auth.WithUserContext(req.Context(), &auth.UserContext{UserID: uuid.New()})
		rec := httptest.NewRecorder()

		m.RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing context forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/records", nil)
		rec := httptest.NewRecorder()

		m.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

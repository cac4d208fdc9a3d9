package handler

import (
	"net/http"

	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// AuthHandler handles the token endpoints. The gateway forwards credential
// checks to the core API and never mints tokens itself.
type AuthHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(actions *action.Runner, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		actions: actions,
		logger:  logger,
	}
}

// CreateToken godoc
// @Summary Create token pair
// @Description Exchange credentials for an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body domain.CreateTokenRequest true "User credentials"
// @Success 200 {object} domain.TokenPairDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/jwt/create [post]
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.actions.CreateToken(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Refresh token
// @Description Exchange a refresh token for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} domain.TokenPairDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/jwt/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.actions.RefreshToken(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// VerifyToken godoc
// @Summary Verify token
// @Description Check whether a token is currently valid
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body domain.VerifyTokenRequest true "Token to verify"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/jwt/verify [post]
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.actions.VerifyToken(r.Context(), &req); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{})
}

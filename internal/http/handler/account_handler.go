package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// AccountHandler handles HTTP requests for accounts
type AccountHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(actions *action.Runner, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListAccounts godoc
// @Summary List accounts
// @Description Get paginated list of ledger accounts
// @Tags Accounts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or institution"
// @Param ordering query string false "Upstream ordering expression"
// @Success 200 {object} domain.Paginated[domain.AccountDTO]
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListAccounts(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetAccount godoc
// @Summary Get account
// @Description Get a ledger account by ID
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID: must be a valid UUID")
		return
	}

	account, err := h.actions.GetAccount(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// CreateAccount godoc
// @Summary Create account
// @Description Create a new ledger account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param account body domain.CreateAccountRequest true "Account to create"
// @Success 201 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.actions.CreateAccount(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

// UpdateAccount godoc
// @Summary Update account
// @Description Replace a ledger account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body domain.UpdateAccountRequest true "Account fields"
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID: must be a valid UUID")
		return
	}

	var req domain.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.actions.UpdateAccount(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// PatchAccount godoc
// @Summary Patch account
// @Description Partially update a ledger account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body domain.PatchAccountRequest true "Fields to change"
// @Success 200 {object} domain.AccountDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{id} [patch]
func (h *AccountHandler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID: must be a valid UUID")
		return
	}

	var req domain.PatchAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.actions.PatchAccount(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Delete a ledger account
// @Tags Accounts
// @Param id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID: must be a valid UUID")
		return
	}

	if err := h.actions.DeleteAccount(r.Context(), id); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pocketledger/actions-api/internal/action"
	"go.uber.org/zap"
)

// AccountTypeHandler handles HTTP requests for the account type catalog
type AccountTypeHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewAccountTypeHandler creates a new AccountTypeHandler
func NewAccountTypeHandler(actions *action.Runner, logger *zap.Logger) *AccountTypeHandler {
	return &AccountTypeHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListAccountTypes godoc
// @Summary List account types
// @Description Get paginated account type catalog
// @Tags AccountTypes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.Paginated[domain.AccountTypeDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /account-types [get]
func (h *AccountTypeHandler) ListAccountTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListAccountTypes(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetAccountType godoc
// @Summary Get account type
// @Description Get one account type catalog entry
// @Tags AccountTypes
// @Produce json
// @Param id path int true "Account type ID"
// @Success 200 {object} domain.AccountTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /account-types/{id} [get]
func (h *AccountTypeHandler) GetAccountType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondWithError(w, http.StatusBadRequest, "Invalid account type ID")
		return
	}

	accountType, err := h.actions.GetAccountType(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, accountType)
}

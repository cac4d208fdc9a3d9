package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pocketledger/actions-api/internal/action"
	"go.uber.org/zap"
)

// CurrencyHandler handles HTTP requests for the currency catalog
type CurrencyHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(actions *action.Runner, logger *zap.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListCurrencies godoc
// @Summary List currencies
// @Description Get paginated currency catalog
// @Tags Currencies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.Paginated[domain.CurrencyDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /currencies [get]
func (h *CurrencyHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListCurrencies(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetCurrency godoc
// @Summary Get currency
// @Description Get one currency by its ISO 4217 code
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} domain.CurrencyDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /currencies/{code} [get]
func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	currency, err := h.actions.GetCurrency(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, currency)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// BudgetHandler handles HTTP requests for budgets
type BudgetHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(actions *action.Runner, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListBudgets godoc
// @Summary List budgets
// @Description Get paginated list of budgets
// @Tags Budgets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Param ordering query string false "Upstream ordering expression"
// @Success 200 {object} domain.Paginated[domain.BudgetDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListBudgets(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetBudget godoc
// @Summary Get budget
// @Description Get a budget by ID
// @Tags Budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} domain.BudgetDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget ID: must be a valid UUID")
		return
	}

	budget, err := h.actions.GetBudget(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// CreateBudget godoc
// @Summary Create budget
// @Description Create a new budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Param budget body domain.CreateBudgetRequest true "Budget to create"
// @Success 201 {object} domain.BudgetDTO
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	budget, err := h.actions.CreateBudget(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, budget)
}

// UpdateBudget godoc
// @Summary Update budget
// @Description Replace a budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body domain.UpdateBudgetRequest true "Budget fields"
// @Success 200 {object} domain.BudgetDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget ID: must be a valid UUID")
		return
	}

	var req domain.UpdateBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	budget, err := h.actions.UpdateBudget(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// PatchBudget godoc
// @Summary Patch budget
// @Description Partially update a budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body domain.PatchBudgetRequest true "Fields to change"
// @Success 200 {object} domain.BudgetDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets/{id} [patch]
func (h *BudgetHandler) PatchBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget ID: must be a valid UUID")
		return
	}

	var req domain.PatchBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	budget, err := h.actions.PatchBudget(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// DeleteBudget godoc
// @Summary Delete budget
// @Description Delete a budget
// @Tags Budgets
// @Param id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget ID: must be a valid UUID")
		return
	}

	if err := h.actions.DeleteBudget(r.Context(), id); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// CouponHandler handles HTTP requests for coupons
type CouponHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(actions *action.Runner, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListCoupons godoc
// @Summary List coupons
// @Description Get paginated list of coupons
// @Tags Coupons
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by code"
// @Success 200 {object} domain.Paginated[domain.CouponDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /coupons [get]
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListCoupons(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetCoupon godoc
// @Summary Get coupon
// @Description Get a coupon by ID
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} domain.CouponDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /coupons/{id} [get]
func (h *CouponHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid coupon ID: must be a valid UUID")
		return
	}

	coupon, err := h.actions.GetCoupon(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

// CreateCoupon godoc
// @Summary Create coupon
// @Description Create a new coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body domain.CreateCouponRequest true "Coupon to create"
// @Success 201 {object} domain.CouponDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	coupon, err := h.actions.CreateCoupon(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, coupon)
}

// DeleteCoupon godoc
// @Summary Delete coupon
// @Description Delete a coupon
// @Tags Coupons
// @Param id path string true "Coupon ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid coupon ID: must be a valid UUID")
		return
	}

	if err := h.actions.DeleteCoupon(r.Context(), id); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ApplyCoupon godoc
// @Summary Apply coupon
// @Description Apply a coupon to an account
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param application body domain.ApplyCouponRequest true "Target account"
// @Success 200 {object} domain.CouponApplicationDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /coupons/{id}/apply [post]
func (h *CouponHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid coupon ID: must be a valid UUID")
		return
	}

	var req domain.ApplyCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.actions.ApplyCoupon(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

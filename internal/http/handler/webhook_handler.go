package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// WebhookHandler handles HTTP requests for webhook registrations
type WebhookHandler struct {
	actions *action.Runner
	logger  *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(actions *action.Runner, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		actions: actions,
		logger:  logger,
	}
}

// ListWebhooks godoc
// @Summary List webhooks
// @Description Get paginated list of registered webhooks
// @Tags Webhooks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {object} domain.Paginated[domain.WebhookDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks [get]
func (h *WebhookHandler) ListWebhooks(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListWebhooks(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetWebhook godoc
// @Summary Get webhook
// @Description Get a webhook registration by ID
// @Tags Webhooks
// @Produce json
// @Param id path string true "Webhook ID"
// @Success 200 {object} domain.WebhookDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks/{id} [get]
func (h *WebhookHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook ID: must be a valid UUID")
		return
	}

	webhook, err := h.actions.GetWebhook(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, webhook)
}

// CreateWebhook godoc
// @Summary Create webhook
// @Description Register a new webhook endpoint
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param webhook body domain.CreateWebhookRequest true "Webhook to register"
// @Success 201 {object} domain.WebhookDTO
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks [post]
func (h *WebhookHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWebhookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	webhook, err := h.actions.CreateWebhook(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, webhook)
}

// UpdateWebhook godoc
// @Summary Update webhook
// @Description Replace a webhook registration
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param id path string true "Webhook ID"
// @Param webhook body domain.UpdateWebhookRequest true "Webhook fields"
// @Success 200 {object} domain.WebhookDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks/{id} [put]
func (h *WebhookHandler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook ID: must be a valid UUID")
		return
	}

	var req domain.UpdateWebhookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	webhook, err := h.actions.UpdateWebhook(r.Context(), id, &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, webhook)
}

// DeleteWebhook godoc
// @Summary Delete webhook
// @Description Remove a webhook registration
// @Tags Webhooks
// @Param id path string true "Webhook ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks/{id} [delete]
func (h *WebhookHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook ID: must be a valid UUID")
		return
	}

	if err := h.actions.DeleteWebhook(r.Context(), id); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListDeliveries godoc
// @Summary List webhook deliveries
// @Description Get paginated delivery attempts for a webhook
// @Tags Webhooks
// @Produce json
// @Param id path string true "Webhook ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param status query string false "Filter by delivery status" Enums(pending, succeeded, failed)
// @Success 200 {object} domain.Paginated[domain.WebhookDeliveryDTO]
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks/{id}/deliveries [get]
func (h *WebhookHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook ID: must be a valid UUID")
		return
	}

	status := r.URL.Query().Get("status")
	switch status {
	case "", domain.DeliveryStatusPending, domain.DeliveryStatusSucceeded, domain.DeliveryStatusFailed:
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid status: must be one of pending, succeeded, failed")
		return
	}

	result, err := h.actions.ListDeliveries(r.Context(), id, parseListOptions(r), status)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// RetryDelivery godoc
// @Summary Retry webhook delivery
// @Description Ask the core API to redeliver a failed delivery
// @Tags Webhooks
// @Produce json
// @Param id path string true "Webhook ID"
// @Param deliveryId path string true "Delivery ID"
// @Success 200 {object} domain.WebhookDeliveryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /webhooks/{id}/deliveries/{deliveryId}/retry [post]
func (h *WebhookHandler) RetryDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid webhook ID: must be a valid UUID")
		return
	}
	deliveryID, err := uuid.Parse(chi.URLParam(r, "deliveryId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delivery ID: must be a valid UUID")
		return
	}

	delivery, err := h.actions.RetryDelivery(r.Context(), id, deliveryID)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, delivery)
}

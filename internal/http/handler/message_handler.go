package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// MessageHandler handles HTTP requests for messages
type MessageHandler struct {
	actions       *action.Runner
	maxUploadSize int64
	logger        *zap.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(actions *action.Runner, maxUploadSizeMB int64, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		actions:       actions,
		maxUploadSize: maxUploadSizeMB * 1024 * 1024,
		logger:        logger,
	}
}

// ListMessages godoc
// @Summary List messages
// @Description Get paginated list of messages
// @Tags Messages
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by subject"
// @Success 200 {object} domain.Paginated[domain.MessageDTO]
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /messages [get]
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.ListMessages(r.Context(), parseListOptions(r))
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetMessage godoc
// @Summary Get message
// @Description Get a message by ID
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} domain.MessageDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /messages/{id} [get]
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid message ID: must be a valid UUID")
		return
	}

	message, err := h.actions.GetMessage(r.Context(), id)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, message)
}

// CreateMessage godoc
// @Summary Create message
// @Description Create a new notification message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body domain.CreateMessageRequest true "Message to create"
// @Success 201 {object} domain.MessageDTO
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	message, err := h.actions.CreateMessage(r.Context(), &req)
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// DeleteMessage godoc
// @Summary Delete message
// @Description Delete a message
// @Tags Messages
// @Param id path string true "Message ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid message ID: must be a valid UUID")
		return
	}

	if err := h.actions.DeleteMessage(r.Context(), id); err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AttachFile godoc
// @Summary Attach file
// @Description Upload a file attachment for a message
// @Tags Messages
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Message ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} domain.AttachmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /messages/{id}/attachment [post]
func (h *MessageHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid message ID: must be a valid UUID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Upload exceeds the maximum allowed size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.actions.AttachFile(r.Context(), id, &action.AttachFileInput{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		respondActionError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, attachment)
}

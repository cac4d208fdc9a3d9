package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/journal"
	"go.uber.org/zap"
)

// JournalHandler exposes the action journal over the admin surface
type JournalHandler struct {
	journal *journal.Service
	logger  *zap.Logger
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalSvc *journal.Service, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		journal: journalSvc,
		logger:  logger,
	}
}

// ListRecords godoc
// @Summary List action records
// @Description Get paginated action journal entries, newest first
// @Tags Journal
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(50)
// @Param resource query string false "Filter by resource"
// @Param action query string false "Filter by action name"
// @Param outcome query string false "Filter by outcome" Enums(success, validation_failed, execution_failed)
// @Param since query string false "Only records at or after this RFC 3339 timestamp"
// @Success 200 {object} domain.Paginated[domain.ActionRecordDTO]
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /journal/records [get]
func (h *JournalHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	outcome := r.URL.Query().Get("outcome")
	switch outcome {
	case "", domain.OutcomeSuccess, domain.OutcomeValidationFailed, domain.OutcomeExecutionFailed:
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid outcome: must be one of success, validation_failed, execution_failed")
		return
	}

	filter := journal.ListFilter{
		Resource: r.URL.Query().Get("resource"),
		Action:   r.URL.Query().Get("action"),
		Outcome:  outcome,
	}
	if since := r.URL.Query().Get("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid since: must be an RFC 3339 timestamp")
			return
		}
		filter.Since = &ts
	}

	records, total, err := h.journal.List(r.Context(), page, pageSize, filter)
	if err != nil {
		h.logger.Error("failed to list action records", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list action records")
		return
	}

	respondJSON(w, http.StatusOK, domain.Paginated[domain.ActionRecordDTO]{
		Count: total,
		Items: records,
	})
}

package journal

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/domain"
	"go.uber.org/zap"
)

// Service records action invocations. Writes are best-effort: a journal
// failure is logged and swallowed so it can never fail the action it
// describes.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a new journal service
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Entry is the input for recording one action invocation
type Entry struct {
	Action   string
	Resource string
	Endpoint string
	Method   string
	Outcome  string
	Detail   string
	Duration time.Duration
}

// Record writes a journal row for the entry. Request ID and user identity
// are taken from the context when present.
func (s *Service) Record(ctx context.Context, entry Entry) {
	record := &domain.ActionRecord{
		Action:     entry.Action,
		Resource:   entry.Resource,
		Endpoint:   entry.Endpoint,
		Method:     entry.Method,
		Outcome:    entry.Outcome,
		Detail:     truncate(entry.Detail, 1000),
		DurationMs: entry.Duration.Milliseconds(),
		RequestID:  middleware.GetReqID(ctx),
		CreatedAt:  time.Now().UTC(),
	}

	if userCtx, ok := auth.FromContext(ctx); ok {
		id := userCtx.UserID
		record.UserID = &id
	}

	// Detach from the caller's context so an expired or cancelled action
	// still leaves a row. Every invocation gets recorded, failures included.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.repo.Create(writeCtx, record); err != nil {
		s.logger.Error("failed to write action record",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err))
	}
}

// List returns journal rows as DTOs, newest first
func (s *Service) List(ctx context.Context, page, pageSize int, filter ListFilter) ([]domain.ActionRecordDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	records, total, err := s.repo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]domain.ActionRecordDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos, total, nil
}

// Prune removes rows older than the retention window
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.Prune(ctx, cutoff)
}

func toDTO(r *domain.ActionRecord) domain.ActionRecordDTO {
	return domain.ActionRecordDTO{
		ID:         r.ID,
		Action:     r.Action,
		Resource:   r.Resource,
		Endpoint:   r.Endpoint,
		Method:     r.Method,
		Outcome:    r.Outcome,
		Detail:     r.Detail,
		DurationMs: r.DurationMs,
		RequestID:  r.RequestID,
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

package journal

import (
	"context"
	"time"

	"github.com/pocketledger/actions-api/internal/domain"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, record *domain.ActionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListFilter narrows the journal listing
type ListFilter struct {
	Resource string
	Action   string
	Outcome  string
	Since    *time.Time
}

func (r *Repository) List(ctx context.Context, page, pageSize int, filter ListFilter) ([]domain.ActionRecord, int64, error) {
	var records []domain.ActionRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ActionRecord{})

	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&records).Error

	return records, total, err
}

// Prune deletes records older than the cutoff and returns how many were removed
func (r *Repository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.ActionRecord{})
	return result.RowsAffected, result.Error
}

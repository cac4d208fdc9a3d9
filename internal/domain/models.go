package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action outcomes recorded in the journal
const (
	OutcomeSuccess          = "success"
	OutcomeValidationFailed = "validation_failed"
	OutcomeExecutionFailed  = "execution_failed"
)

// ActionRecord is one row in the action journal: a single invocation of a
// server action, successful or not. Journal writes never fail the action
// they describe.
type ActionRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     string    `gorm:"size:100;not null;index"`
	Resource   string    `gorm:"size:50;not null;index"`
	Endpoint   string    `gorm:"size:255;not null"`
	Method     string    `gorm:"size:10;not null"`
	Outcome    string    `gorm:"size:30;not null;index"`
	Detail     string    `gorm:"size:1000"`
	DurationMs int64     `gorm:"not null"`
	RequestID  string    `gorm:"size:64;index"`
	UserID     *uuid.UUID
	CreatedAt  time.Time `gorm:"index"`
}

// BeforeCreate assigns an ID when gorm inserts without one
func (r *ActionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName overrides the gorm default
func (ActionRecord) TableName() string {
	return "action_records"
}

// ActionRecordDTO is the journal row as exposed over the admin surface
type ActionRecordDTO struct {
	ID         uuid.UUID  `json:"id"`
	Action     string     `json:"action"`
	Resource   string     `json:"resource"`
	Endpoint   string     `json:"endpoint"`
	Method     string     `json:"method"`
	Outcome    string     `json:"outcome"`
	Detail     string     `json:"detail,omitempty"`
	DurationMs int64      `json:"durationMs"`
	RequestID  string     `json:"requestId,omitempty"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

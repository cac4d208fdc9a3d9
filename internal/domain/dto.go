package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListOptions carries the common pagination and filter parameters for list
// actions. All fields map one-to-one onto upstream query parameters.
type ListOptions struct {
	Page     int    `validate:"omitempty,gte=1"`
	PageSize int    `validate:"omitempty,gte=1,lte=200"`
	Search   string `validate:"omitempty,max=200"`
	Ordering string `validate:"omitempty,max=64"`
}

// Paginated is the gateway's list envelope, mirroring the upstream
// count/next/previous pagination.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Items    []T     `json:"items"`
}

// AccountTypeDTO is a read-only catalog entry describing a kind of account
type AccountTypeDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// AccountDTO represents a ledger account
type AccountDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TypeID      int       `json:"typeId"`
	Currency    string    `json:"currency"`
	Balance     string    `json:"balance"`
	Institution string    `json:"institution,omitempty"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateAccountRequest is the input for the account create action
type CreateAccountRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	TypeID      int    `json:"typeId" validate:"required,gte=1"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
	Institution string `json:"institution" validate:"omitempty,max=120"`
}

// UpdateAccountRequest is the input for the account update action (full replace)
type UpdateAccountRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	TypeID      int    `json:"typeId" validate:"required,gte=1"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
	Institution string `json:"institution" validate:"omitempty,max=120"`
	IsArchived  bool   `json:"isArchived"`
}

// PatchAccountRequest is the input for the account partial-update action.
// Nil fields are omitted from the upstream payload.
type PatchAccountRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	TypeID      *int    `json:"typeId" validate:"omitempty,gte=1"`
	Institution *string `json:"institution" validate:"omitempty,max=120"`
	IsArchived  *bool   `json:"isArchived"`
}

// BudgetDTO represents a spending budget over a period
type BudgetDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Amount      string     `json:"amount"`
	Spent       string     `json:"spent"`
	Currency    string     `json:"currency"`
	AccountID   *uuid.UUID `json:"accountId,omitempty"`
	PeriodStart time.Time  `json:"periodStart"`
	PeriodEnd   time.Time  `json:"periodEnd"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateBudgetRequest is the input for the budget create action
type CreateBudgetRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Amount      string     `json:"amount" validate:"required,numeric"`
	Currency    string     `json:"currency" validate:"required,len=3,alpha"`
	AccountID   *uuid.UUID `json:"accountId" validate:"omitempty"`
	PeriodStart time.Time  `json:"periodStart" validate:"required"`
	PeriodEnd   time.Time  `json:"periodEnd" validate:"required,gtfield=PeriodStart"`
}

// UpdateBudgetRequest is the input for the budget update action
type UpdateBudgetRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Amount      string     `json:"amount" validate:"required,numeric"`
	Currency    string     `json:"currency" validate:"required,len=3,alpha"`
	AccountID   *uuid.UUID `json:"accountId" validate:"omitempty"`
	PeriodStart time.Time  `json:"periodStart" validate:"required"`
	PeriodEnd   time.Time  `json:"periodEnd" validate:"required,gtfield=PeriodStart"`
}

// PatchBudgetRequest is the input for the budget partial-update action
type PatchBudgetRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Amount *string `json:"amount" validate:"omitempty,numeric"`
}

// CouponDTO represents a discount coupon
type CouponDTO struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	PercentOff     int        `json:"percentOff"`
	MaxRedemptions int        `json:"maxRedemptions"`
	TimesRedeemed  int        `json:"timesRedeemed"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CreateCouponRequest is the input for the coupon create action
type CreateCouponRequest struct {
	Code           string     `json:"code" validate:"required,alphanum,min=4,max=32"`
	PercentOff     int        `json:"percentOff" validate:"required,gte=1,lte=100"`
	MaxRedemptions int        `json:"maxRedemptions" validate:"omitempty,gte=1"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// ApplyCouponRequest is the input for the coupon apply action
type ApplyCouponRequest struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
}

// CouponApplicationDTO is the result of applying a coupon to an account
type CouponApplicationDTO struct {
	CouponID   uuid.UUID `json:"couponId"`
	AccountID  uuid.UUID `json:"accountId"`
	PercentOff int       `json:"percentOff"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// MessageDTO represents a notification message sent to a user
type MessageDTO struct {
	ID            uuid.UUID  `json:"id"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Channel       string     `json:"channel"`
	Status        string     `json:"status"`
	RecipientID   *uuid.UUID `json:"recipientId,omitempty"`
	AttachmentURL string     `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CreateMessageRequest is the input for the message create action
type CreateMessageRequest struct {
	Subject     string     `json:"subject" validate:"required,max=200"`
	Body        string     `json:"body" validate:"required,max=10000"`
	Channel     string     `json:"channel" validate:"required,oneof=email push sms"`
	RecipientID *uuid.UUID `json:"recipientId" validate:"omitempty"`
}

// WebhookDTO represents a registered webhook endpoint
type WebhookDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateWebhookRequest is the input for the webhook create action
type CreateWebhookRequest struct {
	URL    string   `json:"url" validate:"required,url,max=500"`
	Events []string `json:"events" validate:"required,min=1,dive,max=64"`
}

// UpdateWebhookRequest is the input for the webhook update action
type UpdateWebhookRequest struct {
	URL      string   `json:"url" validate:"required,url,max=500"`
	Events   []string `json:"events" validate:"required,min=1,dive,max=64"`
	IsActive bool     `json:"isActive"`
}

// WebhookDeliveryDTO represents a single delivery attempt of a webhook event
type WebhookDeliveryDTO struct {
	ID            uuid.UUID  `json:"id"`
	WebhookID     uuid.UUID  `json:"webhookId"`
	Event         string     `json:"event"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	ResponseCode  *int       `json:"responseCode,omitempty"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Webhook delivery statuses as reported by the core API
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusSucceeded = "succeeded"
	DeliveryStatusFailed    = "failed"
)

// CurrencyDTO is a read-only catalog entry describing a supported currency
type CurrencyDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimalPlaces"`
	IsActive      bool   `json:"isActive"`
}

// CreateTokenRequest is the input for the token create action
type CreateTokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RefreshTokenRequest is the input for the token refresh action
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// VerifyTokenRequest is the input for the token verify action
type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenPairDTO carries the access/refresh token pair issued upstream
type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// AttachmentDTO describes an uploaded message attachment
type AttachmentDTO struct {
	MessageID   uuid.UUID `json:"messageId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StoragePath string    `json:"storagePath"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

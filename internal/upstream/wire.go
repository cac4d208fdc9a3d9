package upstream

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Wire types mirror the core API's JSON exactly (snake_case, trailing-slash
// DRF conventions). The mapper package converts them to gateway DTOs; they
// never cross the HTTP surface directly.

// List is the core API's pagination envelope
type List[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// validateWith validates each element of the envelope
func (l *List[T]) validateWith(v *validator.Validate) error {
	for i := range l.Results {
		if err := v.Struct(&l.Results[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListParams carries pagination and filter query parameters
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
}

// Query converts the params to upstream query values
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Ordering != "" {
		q.Set("ordering", p.Ordering)
	}
	return q
}

// AccountType is the wire form of an account type catalog entry
type AccountType struct {
	ID          int    `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=asset liability income expense"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Account is the wire form of a ledger account
type Account struct {
	ID          uuid.UUID `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	TypeID      int       `json:"type_id" validate:"required"`
	Currency    string    `json:"currency" validate:"required,len=3"`
	Balance     string    `json:"balance" validate:"required"`
	Institution string    `json:"institution"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at" validate:"required"`
	UpdatedAt   time.Time `json:"updated_at" validate:"required"`
}

// AccountWrite is the wire payload for account create/update
type AccountWrite struct {
	Name        string `json:"name"`
	TypeID      int    `json:"type_id"`
	Currency    string `json:"currency"`
	Institution string `json:"institution,omitempty"`
	IsArchived  bool   `json:"is_archived"`
}

// AccountPatch is the wire payload for account partial update; nil fields
// are omitted so the upstream leaves them untouched
type AccountPatch struct {
	Name        *string `json:"name,omitempty"`
	TypeID      *int    `json:"type_id,omitempty"`
	Institution *string `json:"institution,omitempty"`
	IsArchived  *bool   `json:"is_archived,omitempty"`
}

// Budget is the wire form of a budget
type Budget struct {
	ID          uuid.UUID  `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Amount      string     `json:"amount" validate:"required"`
	Spent       string     `json:"spent"`
	Currency    string     `json:"currency" validate:"required,len=3"`
	AccountID   *uuid.UUID `json:"account_id"`
	PeriodStart time.Time  `json:"period_start" validate:"required"`
	PeriodEnd   time.Time  `json:"period_end" validate:"required"`
	CreatedAt   time.Time  `json:"created_at" validate:"required"`
	UpdatedAt   time.Time  `json:"updated_at" validate:"required"`
}

// BudgetWrite is the wire payload for budget create/update
type BudgetWrite struct {
	Name        string     `json:"name"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	AccountID   *uuid.UUID `json:"account_id,omitempty"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
}

// BudgetPatch is the wire payload for budget partial update
type BudgetPatch struct {
	Name   *string `json:"name,omitempty"`
	Amount *string `json:"amount,omitempty"`
}

// Coupon is the wire form of a discount coupon
type Coupon struct {
	ID             uuid.UUID  `json:"id" validate:"required"`
	Code           string     `json:"code" validate:"required"`
	PercentOff     int        `json:"percent_off" validate:"required,gte=1,lte=100"`
	MaxRedemptions int        `json:"max_redemptions"`
	TimesRedeemed  int        `json:"times_redeemed"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at" validate:"required"`
}

// CouponWrite is the wire payload for coupon create
type CouponWrite struct {
	Code           string     `json:"code"`
	PercentOff     int        `json:"percent_off"`
	MaxRedemptions int        `json:"max_redemptions,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// CouponApply is the wire payload for POST /coupons/{id}/apply/
type CouponApply struct {
	AccountID uuid.UUID `json:"account_id"`
}

// CouponApplication is the wire result of applying a coupon
type CouponApplication struct {
	CouponID   uuid.UUID `json:"coupon_id" validate:"required"`
	AccountID  uuid.UUID `json:"account_id" validate:"required"`
	PercentOff int       `json:"percent_off" validate:"required"`
	AppliedAt  time.Time `json:"applied_at" validate:"required"`
}

// Message is the wire form of a notification message
type Message struct {
	ID            uuid.UUID  `json:"id" validate:"required"`
	Subject       string     `json:"subject" validate:"required"`
	Body          string     `json:"body"`
	Channel       string     `json:"channel" validate:"required,oneof=email push sms"`
	Status        string     `json:"status" validate:"required"`
	RecipientID   *uuid.UUID `json:"recipient_id"`
	AttachmentURL string     `json:"attachment_url"`
	CreatedAt     time.Time  `json:"created_at" validate:"required"`
}

// MessageWrite is the wire payload for message create
type MessageWrite struct {
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Channel     string     `json:"channel"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
}

// MessageAttach is the wire payload recording an uploaded attachment
type MessageAttach struct {
	AttachmentURL string `json:"attachment_url"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
}

// Webhook is the wire form of a registered webhook endpoint
type Webhook struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	URL       string    `json:"url" validate:"required,url"`
	Events    []string  `json:"events" validate:"required,min=1"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
}

// WebhookWrite is the wire payload for webhook create/update
type WebhookWrite struct {
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	IsActive bool     `json:"is_active"`
}

// WebhookDelivery is the wire form of one webhook delivery attempt
type WebhookDelivery struct {
	ID            uuid.UUID  `json:"id" validate:"required"`
	WebhookID     uuid.UUID  `json:"webhook_id" validate:"required"`
	Event         string     `json:"event" validate:"required"`
	Status        string     `json:"status" validate:"required,oneof=pending succeeded failed"`
	Attempts      int        `json:"attempts"`
	ResponseCode  *int       `json:"response_code"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`
	CreatedAt     time.Time  `json:"created_at" validate:"required"`
}

// Currency is the wire form of a currency catalog entry
type Currency struct {
	Code          string `json:"code" validate:"required,len=3"`
	Name          string `json:"name" validate:"required"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places" validate:"gte=0,lte=8"`
	IsActive      bool   `json:"is_active"`
}

// TokenCreate is the wire payload for POST /auth/jwt/create/
type TokenCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRefresh is the wire payload for POST /auth/jwt/refresh/
type TokenRefresh struct {
	Refresh string `json:"refresh"`
}

// TokenVerify is the wire payload for POST /auth/jwt/verify/
type TokenVerify struct {
	Token string `json:"token"`
}

// TokenPair is the wire form of an issued token pair
type TokenPair struct {
	Access  string `json:"access" validate:"required"`
	Refresh string `json:"refresh"`
}

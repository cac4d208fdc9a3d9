package mapper

import (
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/upstream"
)

// ToPaginated converts an upstream list envelope using the given element
// converter
func ToPaginated[W any, D any](list *upstream.List[W], convert func(*W) D) domain.Paginated[D] {
	items := make([]D, 0, len(list.Results))
	for i := range list.Results {
		items = append(items, convert(&list.Results[i]))
	}
	return domain.Paginated[D]{
		Count:    list.Count,
		Next:     list.Next,
		Previous: list.Previous,
		Items:    items,
	}
}

// ToListParams converts gateway list options to upstream query parameters
func ToListParams(opts domain.ListOptions) upstream.ListParams {
	return upstream.ListParams{
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Search:   opts.Search,
		Ordering: opts.Ordering,
	}
}

// ToAccountTypeDTO converts an upstream AccountType to AccountTypeDTO
func ToAccountTypeDTO(t *upstream.AccountType) domain.AccountTypeDTO {
	return domain.AccountTypeDTO{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Category:    t.Category,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
}

// ToAccountDTO converts an upstream Account to AccountDTO
func ToAccountDTO(a *upstream.Account) domain.AccountDTO {
	return domain.AccountDTO{
		ID:          a.ID,
		Name:        a.Name,
		TypeID:      a.TypeID,
		Currency:    a.Currency,
		Balance:     a.Balance,
		Institution: a.Institution,
		IsArchived:  a.IsArchived,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAccountWrite converts a create request to the upstream write payload
func ToAccountWrite(req *domain.CreateAccountRequest) *upstream.AccountWrite {
	return &upstream.AccountWrite{
		Name:        req.Name,
		TypeID:      req.TypeID,
		Currency:    req.Currency,
		Institution: req.Institution,
	}
}

// ToAccountWriteFromUpdate converts an update request to the upstream write payload
func ToAccountWriteFromUpdate(req *domain.UpdateAccountRequest) *upstream.AccountWrite {
	return &upstream.AccountWrite{
		Name:        req.Name,
		TypeID:      req.TypeID,
		Currency:    req.Currency,
		Institution: req.Institution,
		IsArchived:  req.IsArchived,
	}
}

// ToAccountPatch converts a patch request to the upstream patch payload
func ToAccountPatch(req *domain.PatchAccountRequest) *upstream.AccountPatch {
	return &upstream.AccountPatch{
		Name:        req.Name,
		TypeID:      req.TypeID,
		Institution: req.Institution,
		IsArchived:  req.IsArchived,
	}
}

// ToBudgetDTO converts an upstream Budget to BudgetDTO
func ToBudgetDTO(b *upstream.Budget) domain.BudgetDTO {
	return domain.BudgetDTO{
		ID:          b.ID,
		Name:        b.Name,
		Amount:      b.Amount,
		Spent:       b.Spent,
		Currency:    b.Currency,
		AccountID:   b.AccountID,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBudgetWrite converts a create request to the upstream write payload
func ToBudgetWrite(req *domain.CreateBudgetRequest) *upstream.BudgetWrite {
	return &upstream.BudgetWrite{
		Name:        req.Name,
		Amount:      req.Amount,
		Currency:    req.Currency,
		AccountID:   req.AccountID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}
}

// ToBudgetWriteFromUpdate converts an update request to the upstream write payload
func ToBudgetWriteFromUpdate(req *domain.UpdateBudgetRequest) *upstream.BudgetWrite {
	return &upstream.BudgetWrite{
		Name:        req.Name,
		Amount:      req.Amount,
		Currency:    req.Currency,
		AccountID:   req.AccountID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}
}

// ToBudgetPatch converts a patch request to the upstream patch payload
func ToBudgetPatch(req *domain.PatchBudgetRequest) *upstream.BudgetPatch {
	return &upstream.BudgetPatch{
		Name:   req.Name,
		Amount: req.Amount,
	}
}

// ToCouponDTO converts an upstream Coupon to CouponDTO
func ToCouponDTO(c *upstream.Coupon) domain.CouponDTO {
	return domain.CouponDTO{
		ID:             c.ID,
		Code:           c.Code,
		PercentOff:     c.PercentOff,
		MaxRedemptions: c.MaxRedemptions,
		TimesRedeemed:  c.TimesRedeemed,
		ExpiresAt:      c.ExpiresAt,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCouponWrite converts a create request to the upstream write payload
func ToCouponWrite(req *domain.CreateCouponRequest) *upstream.CouponWrite {
	return &upstream.CouponWrite{
		Code:           req.Code,
		PercentOff:     req.PercentOff,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
	}
}

// ToCouponApplicationDTO converts an upstream application result
func ToCouponApplicationDTO(a *upstream.CouponApplication) domain.CouponApplicationDTO {
	return domain.CouponApplicationDTO{
		CouponID:   a.CouponID,
		AccountID:  a.AccountID,
		PercentOff: a.PercentOff,
		AppliedAt:  a.AppliedAt,
	}
}

// ToMessageDTO converts an upstream Message to MessageDTO
func ToMessageDTO(m *upstream.Message) domain.MessageDTO {
	return domain.MessageDTO{
		ID:            m.ID,
		Subject:       m.Subject,
		Body:          m.Body,
		Channel:       m.Channel,
		Status:        m.Status,
		RecipientID:   m.RecipientID,
		AttachmentURL: m.AttachmentURL,
		CreatedAt:     m.CreatedAt,
	}
}

// ToMessageWrite converts a create request to the upstream write payload
func ToMessageWrite(req *domain.CreateMessageRequest) *upstream.MessageWrite {
	return &upstream.MessageWrite{
		Subject:     req.Subject,
		Body:        req.Body,
		Channel:     req.Channel,
		RecipientID: req.RecipientID,
	}
}

// ToWebhookDTO converts an upstream Webhook to WebhookDTO
func ToWebhookDTO(w *upstream.Webhook) domain.WebhookDTO {
	return domain.WebhookDTO{
		ID:        w.ID,
		URL:       w.URL,
		Events:    w.Events,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWebhookWrite converts a create request to the upstream write payload.
// New webhooks start active.
func ToWebhookWrite(req *domain.CreateWebhookRequest) *upstream.WebhookWrite {
	return &upstream.WebhookWrite{
		URL:      req.URL,
		Events:   req.Events,
		IsActive: true,
	}
}

// ToWebhookWriteFromUpdate converts an update request to the upstream write payload
func ToWebhookWriteFromUpdate(req *domain.UpdateWebhookRequest) *upstream.WebhookWrite {
	return &upstream.WebhookWrite{
		URL:      req.URL,
		Events:   req.Events,
		IsActive: req.IsActive,
	}
}

// ToWebhookDeliveryDTO converts an upstream WebhookDelivery to its DTO
func ToWebhookDeliveryDTO(d *upstream.WebhookDelivery) domain.WebhookDeliveryDTO {
	return domain.WebhookDeliveryDTO{
		ID:            d.ID,
		WebhookID:     d.WebhookID,
		Event:         d.Event,
		Status:        d.Status,
		Attempts:      d.Attempts,
		ResponseCode:  d.ResponseCode,
		LastAttemptAt: d.LastAttemptAt,
		CreatedAt:     d.CreatedAt,
	}
}

// ToCurrencyDTO converts an upstream Currency to CurrencyDTO
func ToCurrencyDTO(c *upstream.Currency) domain.CurrencyDTO {
	return domain.CurrencyDTO{
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalPlaces: c.DecimalPlaces,
		IsActive:      c.IsActive,
	}
}

// ToTokenPairDTO converts an upstream TokenPair to TokenPairDTO
func ToTokenPairDTO(t *upstream.TokenPair) domain.TokenPairDTO {
	return domain.TokenPairDTO{
		Access:  t.Access,
		Refresh: t.Refresh,
	}
}

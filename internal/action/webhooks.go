package action

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
)

const webhooksResource = "webhooks"

// ListWebhooks returns a page of registered webhooks
func (r *Runner) ListWebhooks(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.WebhookDTO], error) {
	o := op{resource: webhooksResource, action: "webhooks.list", endpoint: "/webhooks/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagWebhooks, listKey("/webhooks/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.WebhookDTO], error) {
		list, err := r.client.ListWebhooks(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.WebhookDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToWebhookDTO), nil
	})
}

// GetWebhook returns one webhook by ID
func (r *Runner) GetWebhook(ctx context.Context, id uuid.UUID) (domain.WebhookDTO, error) {
	endpoint := "/webhooks/" + id.String() + "/"
	o := op{resource: webhooksResource, action: "webhooks.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagWebhooks, endpoint, nil, func(ctx context.Context) (domain.WebhookDTO, error) {
		webhook, err := r.client.GetWebhook(ctx, r.queryCfg, id)
		if err != nil {
			return domain.WebhookDTO{}, err
		}
		return mapper.ToWebhookDTO(webhook), nil
	})
}

// CreateWebhook registers a webhook
func (r *Runner) CreateWebhook(ctx context.Context, req *domain.CreateWebhookRequest) (domain.WebhookDTO, error) {
	o := op{resource: webhooksResource, action: "webhooks.create", endpoint: "/webhooks/", method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagWebhooks, req, func(ctx context.Context) (domain.WebhookDTO, error) {
		webhook, err := r.client.CreateWebhook(ctx, r.mutationCfg, mapper.ToWebhookWrite(req))
		if err != nil {
			return domain.WebhookDTO{}, err
		}
		return mapper.ToWebhookDTO(webhook), nil
	})
}

// UpdateWebhook replaces a webhook registration
func (r *Runner) UpdateWebhook(ctx context.Context, id uuid.UUID, req *domain.UpdateWebhookRequest) (domain.WebhookDTO, error) {
	endpoint := "/webhooks/" + id.String() + "/"
	o := op{resource: webhooksResource, action: "webhooks.update", endpoint: endpoint, method: http.MethodPut}
	return mutate(ctx, r, o, domain.TagWebhooks, req, func(ctx context.Context) (domain.WebhookDTO, error) {
		webhook, err := r.client.UpdateWebhook(ctx, r.mutationCfg, id, mapper.ToWebhookWriteFromUpdate(req))
		if err != nil {
			return domain.WebhookDTO{}, err
		}
		return mapper.ToWebhookDTO(webhook), nil
	})
}

// DeleteWebhook removes a webhook registration
func (r *Runner) DeleteWebhook(ctx context.Context, id uuid.UUID) error {
	endpoint := "/webhooks/" + id.String() + "/"
	o := op{resource: webhooksResource, action: "webhooks.delete", endpoint: endpoint, method: http.MethodDelete}
	_, err := mutate(ctx, r, o, domain.TagWebhooks, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteWebhook(ctx, r.mutationCfg, id)
	})
	return err
}

// ListDeliveries returns a page of delivery attempts for a webhook,
// optionally filtered by status. Delivery listings change as upstream
// retries happen, so they bypass the cache.
func (r *Runner) ListDeliveries(ctx context.Context, id uuid.UUID, opts domain.ListOptions, status string) (domain.Paginated[domain.WebhookDeliveryDTO], error) {
	endpoint := "/webhooks/" + id.String() + "/deliveries/"
	o := op{resource: webhooksResource, action: "webhooks.deliveries.list", endpoint: endpoint, method: http.MethodGet}
	return call(ctx, r, o, opts, func(ctx context.Context) (domain.Paginated[domain.WebhookDeliveryDTO], error) {
		list, err := r.client.ListDeliveries(ctx, r.queryCfg, id, mapper.ToListParams(opts), status)
		if err != nil {
			return domain.Paginated[domain.WebhookDeliveryDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToWebhookDeliveryDTO), nil
	})
}

// RetryDelivery asks the core API to redeliver a failed delivery
func (r *Runner) RetryDelivery(ctx context.Context, webhookID, deliveryID uuid.UUID) (domain.WebhookDeliveryDTO, error) {
	endpoint := "/webhooks/" + webhookID.String() + "/deliveries/" + deliveryID.String() + "/retry/"
	o := op{resource: webhooksResource, action: "webhooks.deliveries.retry", endpoint: endpoint, method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagWebhooks, nil, func(ctx context.Context) (domain.WebhookDeliveryDTO, error) {
		delivery, err := r.client.RetryDelivery(ctx, r.mutationCfg, webhookID, deliveryID)
		if err != nil {
			return domain.WebhookDeliveryDTO{}, err
		}
		return mapper.ToWebhookDeliveryDTO(delivery), nil
	})
}

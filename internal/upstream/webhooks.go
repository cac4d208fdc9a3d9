package upstream

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const webhooksPath = "/webhooks/"

// ListWebhooks calls GET /webhooks/
func (c *Client) ListWebhooks(ctx context.Context, cfg CallConfig, params ListParams) (*List[Webhook], error) {
	return getList[Webhook](ctx, c, cfg, webhooksPath, params)
}

// GetWebhook calls GET /webhooks/{id}/
func (c *Client) GetWebhook(ctx context.Context, cfg CallConfig, id uuid.UUID) (*Webhook, error) {
	return getOne[Webhook](ctx, c, cfg, webhooksPath+id.String()+"/")
}

// CreateWebhook calls POST /webhooks/
func (c *Client) CreateWebhook(ctx context.Context, cfg CallConfig, w *WebhookWrite) (*Webhook, error) {
	return postOne[Webhook](ctx, c, cfg, webhooksPath, w)
}

// UpdateWebhook calls PUT /webhooks/{id}/
func (c *Client) UpdateWebhook(ctx context.Context, cfg CallConfig, id uuid.UUID, w *WebhookWrite) (*Webhook, error) {
	return putOne[Webhook](ctx, c, cfg, webhooksPath+id.String()+"/", w)
}

// DeleteWebhook calls DELETE /webhooks/{id}/
func (c *Client) DeleteWebhook(ctx context.Context, cfg CallConfig, id uuid.UUID) error {
	return deleteOne(ctx, c, cfg, webhooksPath+id.String()+"/")
}

// ListDeliveries calls GET /webhooks/{id}/deliveries/ with an optional
// status filter
func (c *Client) ListDeliveries(ctx context.Context, cfg CallConfig, id uuid.UUID, params ListParams, status string) (*List[WebhookDelivery], error) {
	path := webhooksPath + id.String() + "/deliveries/"
	query := params.Query()
	if status != "" {
		query.Set("status", status)
	}
	var out List[WebhookDelivery]
	if err := c.do(ctx, cfg, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetryDelivery calls POST /webhooks/{id}/deliveries/{deliveryId}/retry/
func (c *Client) RetryDelivery(ctx context.Context, cfg CallConfig, webhookID, deliveryID uuid.UUID) (*WebhookDelivery, error) {
	path := webhooksPath + webhookID.String() + "/deliveries/" + deliveryID.String() + "/retry/"
	return postOne[WebhookDelivery](ctx, c, cfg, path, nil)
}

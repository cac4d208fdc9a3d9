package upstream

import (
	"context"

	"github.com/google/uuid"
)

const messagesPath = "/messages/"

// ListMessages calls GET /messages/
func (c *Client) ListMessages(ctx context.Context, cfg CallConfig, params ListParams) (*List[Message], error) {
	return getList[Message](ctx, c, cfg, messagesPath, params)
}

// GetMessage calls GET /messages/{id}/
func (c *Client) GetMessage(ctx context.Context, cfg CallConfig, id uuid.UUID) (*Message, error) {
	return getOne[Message](ctx, c, cfg, messagesPath+id.String()+"/")
}

// CreateMessage calls POST /messages/
func (c *Client) CreateMessage(ctx context.Context, cfg CallConfig, w *MessageWrite) (*Message, error) {
	return postOne[Message](ctx, c, cfg, messagesPath, w)
}

// DeleteMessage calls DELETE /messages/{id}/
func (c *Client) DeleteMessage(ctx context.Context, cfg CallConfig, id uuid.UUID) error {
	return deleteOne(ctx, c, cfg, messagesPath+id.String()+"/")
}

// AttachToMessage calls POST /messages/{id}/attachment/ after the gateway
// has stored the file, recording where the attachment lives
func (c *Client) AttachToMessage(ctx context.Context, cfg CallConfig, id uuid.UUID, body *MessageAttach) (*Message, error) {
	return postOne[Message](ctx, c, cfg, messagesPath+id.String()+"/attachment/", body)
}

package upstream

import (
	"context"

	"github.com/google/uuid"
)

const accountsPath = "/accounts/"

// ListAccounts calls GET /accounts/
func (c *Client) ListAccounts(ctx context.Context, cfg CallConfig, params ListParams) (*List[Account], error) {
	return getList[Account](ctx, c, cfg, accountsPath, params)
}

// GetAccount calls GET /accounts/{id}/
func (c *Client) GetAccount(ctx context.Context, cfg CallConfig, id uuid.UUID) (*Account, error) {
	return getOne[Account](ctx, c, cfg, accountsPath+id.String()+"/")
}

// CreateAccount calls POST /accounts/
func (c *Client) CreateAccount(ctx context.Context, cfg CallConfig, w *AccountWrite) (*Account, error) {
	return postOne[Account](ctx, c, cfg, accountsPath, w)
}

// UpdateAccount calls PUT /accounts/{id}/
func (c *Client) UpdateAccount(ctx context.Context, cfg CallConfig, id uuid.UUID, w *AccountWrite) (*Account, error) {
	return putOne[Account](ctx, c, cfg, accountsPath+id.String()+"/", w)
}

// PatchAccount calls PATCH /accounts/{id}/
func (c *Client) PatchAccount(ctx context.Context, cfg CallConfig, id uuid.UUID, p *AccountPatch) (*Account, error) {
	return patchOne[Account](ctx, c, cfg, accountsPath+id.String()+"/", p)
}

// DeleteAccount calls DELETE /accounts/{id}/
func (c *Client) DeleteAccount(ctx context.Context, cfg CallConfig, id uuid.UUID) error {
	return deleteOne(ctx, c, cfg, accountsPath+id.String()+"/")
}

package upstream

import (
	"context"
	"strconv"
)

const accountTypesPath = "/account-types/"

// ListAccountTypes calls GET /account-types/
func (c *Client) ListAccountTypes(ctx context.Context, cfg CallConfig, params ListParams) (*List[AccountType], error) {
	return getList[AccountType](ctx, c, cfg, accountTypesPath, params)
}

// GetAccountType calls GET /account-types/{id}/
func (c *Client) GetAccountType(ctx context.Context, cfg CallConfig, id int) (*AccountType, error) {
	return getOne[AccountType](ctx, c, cfg, accountTypesPath+strconv.Itoa(id)+"/")
}

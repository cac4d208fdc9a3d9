package upstream

import "context"

const currenciesPath = "/currencies/"

// ListCurrencies calls GET /currencies/
func (c *Client) ListCurrencies(ctx context.Context, cfg CallConfig, params ListParams) (*List[Currency], error) {
	return getList[Currency](ctx, c, cfg, currenciesPath, params)
}

// GetCurrency calls GET /currencies/{code}/
func (c *Client) GetCurrency(ctx context.Context, cfg CallConfig, code string) (*Currency, error) {
	return getOne[Currency](ctx, c, cfg, currenciesPath+code+"/")
}

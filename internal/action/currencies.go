package action

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
)

const currenciesResource = "currencies"

// ListCurrencies returns a page of the currency catalog
func (r *Runner) ListCurrencies(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.CurrencyDTO], error) {
	o := op{resource: currenciesResource, action: "currencies.list", endpoint: "/currencies/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagCurrencies, listKey("/currencies/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.CurrencyDTO], error) {
		list, err := r.client.ListCurrencies(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.CurrencyDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToCurrencyDTO), nil
	})
}

// getCurrencyInput validates the ISO 4217 code path parameter
type getCurrencyInput struct {
	Code string `validate:"required,len=3,alpha"`
}

// GetCurrency returns one currency by its ISO 4217 code
func (r *Runner) GetCurrency(ctx context.Context, code string) (domain.CurrencyDTO, error) {
	code = strings.ToUpper(code)
	endpoint := "/currencies/" + code + "/"
	o := op{resource: currenciesResource, action: "currencies.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagCurrencies, endpoint, getCurrencyInput{Code: code}, func(ctx context.Context) (domain.CurrencyDTO, error) {
		currency, err := r.client.GetCurrency(ctx, r.queryCfg, code)
		if err != nil {
			return domain.CurrencyDTO{}, err
		}
		return mapper.ToCurrencyDTO(currency), nil
	})
}

// RefreshCurrencies drops the cached currency catalog and warms it again.
// Run on a schedule so the rarely-changing catalog never serves a stale
// entry past the refresh interval.
func (r *Runner) RefreshCurrencies(ctx context.Context) error {
	r.invalidate(ctx, domain.TagCurrencies)
	_, err := r.ListCurrencies(ctx, domain.ListOptions{})
	return err
}

package action

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
)

const accountTypesResource = "account-types"

// ListAccountTypes returns a page of the account type catalog
func (r *Runner) ListAccountTypes(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.AccountTypeDTO], error) {
	o := op{resource: accountTypesResource, action: "account-types.list", endpoint: "/account-types/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagAccountTypes, listKey("/account-types/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.AccountTypeDTO], error) {
		list, err := r.client.ListAccountTypes(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.AccountTypeDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToAccountTypeDTO), nil
	})
}

// GetAccountType returns one catalog entry by ID
func (r *Runner) GetAccountType(ctx context.Context, id int) (domain.AccountTypeDTO, error) {
	endpoint := "/account-types/" + strconv.Itoa(id) + "/"
	o := op{resource: accountTypesResource, action: "account-types.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagAccountTypes, endpoint, nil, func(ctx context.Context) (domain.AccountTypeDTO, error) {
		accountType, err := r.client.GetAccountType(ctx, r.queryCfg, id)
		if err != nil {
			return domain.AccountTypeDTO{}, err
		}
		return mapper.ToAccountTypeDTO(accountType), nil
	})
}

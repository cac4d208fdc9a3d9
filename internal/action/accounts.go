package action

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
)

const accountsResource = "accounts"

// ListAccounts returns a page of accounts
func (r *Runner) ListAccounts(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.AccountDTO], error) {
	o := op{resource: accountsResource, action: "accounts.list", endpoint: "/accounts/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagAccounts, listKey("/accounts/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.AccountDTO], error) {
		list, err := r.client.ListAccounts(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.AccountDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToAccountDTO), nil
	})
}

// GetAccount returns one account by ID
func (r *Runner) GetAccount(ctx context.Context, id uuid.UUID) (domain.AccountDTO, error) {
	endpoint := "/accounts/" + id.String() + "/"
	o := op{resource: accountsResource, action: "accounts.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagAccounts, endpoint, nil, func(ctx context.Context) (domain.AccountDTO, error) {
		account, err := r.client.GetAccount(ctx, r.queryCfg, id)
		if err != nil {
			return domain.AccountDTO{}, err
		}
		return mapper.ToAccountDTO(account), nil
	})
}

// CreateAccount creates an account
func (r *Runner) CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (domain.AccountDTO, error) {
	o := op{resource: accountsResource, action: "accounts.create", endpoint: "/accounts/", method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagAccounts, req, func(ctx context.Context) (domain.AccountDTO, error) {
		account, err := r.client.CreateAccount(ctx, r.mutationCfg, mapper.ToAccountWrite(req))
		if err != nil {
			return domain.AccountDTO{}, err
		}
		return mapper.ToAccountDTO(account), nil
	})
}

// UpdateAccount replaces an account
func (r *Runner) UpdateAccount(ctx context.Context, id uuid.UUID, req *domain.UpdateAccountRequest) (domain.AccountDTO, error) {
	endpoint := "/accounts/" + id.String() + "/"
	o := op{resource: accountsResource, action: "accounts.update", endpoint: endpoint, method: http.MethodPut}
	return mutate(ctx, r, o, domain.TagAccounts, req, func(ctx context.Context) (domain.AccountDTO, error) {
		account, err := r.client.UpdateAccount(ctx, r.mutationCfg, id, mapper.ToAccountWriteFromUpdate(req))
		if err != nil {
			return domain.AccountDTO{}, err
		}
		return mapper.ToAccountDTO(account), nil
	})
}

// PatchAccount partially updates an account
func (r *Runner) PatchAccount(ctx context.Context, id uuid.UUID, req *domain.PatchAccountRequest) (domain.AccountDTO, error) {
	endpoint := "/accounts/" + id.String() + "/"
	o := op{resource: accountsResource, action: "accounts.patch", endpoint: endpoint, method: http.MethodPatch}
	return mutate(ctx, r, o, domain.TagAccounts, req, func(ctx context.Context) (domain.AccountDTO, error) {
		account, err := r.client.PatchAccount(ctx, r.mutationCfg, id, mapper.ToAccountPatch(req))
		if err != nil {
			return domain.AccountDTO{}, err
		}
		return mapper.ToAccountDTO(account), nil
	})
}

// DeleteAccount deletes an account
func (r *Runner) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	endpoint := "/accounts/" + id.String() + "/"
	o := op{resource: accountsResource, action: "accounts.delete", endpoint: endpoint, method: http.MethodDelete}
	_, err := mutate(ctx, r, o, domain.TagAccounts, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteAccount(ctx, r.mutationCfg, id)
	})
	return err
}

package action

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
)

const budgetsResource = "budgets"

// ListBudgets returns a page of budgets
func (r *Runner) ListBudgets(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.BudgetDTO], error) {
	o := op{resource: budgetsResource, action: "budgets.list", endpoint: "/budgets/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagBudgets, listKey("/budgets/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.BudgetDTO], error) {
		list, err := r.client.ListBudgets(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.BudgetDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToBudgetDTO), nil
	})
}

// GetBudget returns one budget by ID
func (r *Runner) GetBudget(ctx context.Context, id uuid.UUID) (domain.BudgetDTO, error) {
	endpoint := "/budgets/" + id.String() + "/"
	o := op{resource: budgetsResource, action: "budgets.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagBudgets, endpoint, nil, func(ctx context.Context) (domain.BudgetDTO, error) {
		budget, err := r.client.GetBudget(ctx, r.queryCfg, id)
		if err != nil {
			return domain.BudgetDTO{}, err
		}
		return mapper.ToBudgetDTO(budget), nil
	})
}

// CreateBudget creates a budget
func (r *Runner) CreateBudget(ctx context.Context, req *domain.CreateBudgetRequest) (domain.BudgetDTO, error) {
	o := op{resource: budgetsResource, action: "budgets.create", endpoint: "/budgets/", method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagBudgets, req, func(ctx context.Context) (domain.BudgetDTO, error) {
		budget, err := r.client.CreateBudget(ctx, r.mutationCfg, mapper.ToBudgetWrite(req))
		if err != nil {
			return domain.BudgetDTO{}, err
		}
		return mapper.ToBudgetDTO(budget), nil
	})
}

// UpdateBudget replaces a budget
func (r *Runner) UpdateBudget(ctx context.Context, id uuid.UUID, req *domain.UpdateBudgetRequest) (domain.BudgetDTO, error) {
	endpoint := "/budgets/" + id.String() + "/"
	o := op{resource: budgetsResource, action: "budgets.update", endpoint: endpoint, method: http.MethodPut}
	return mutate(ctx, r, o, domain.TagBudgets, req, func(ctx context.Context) (domain.BudgetDTO, error) {
		budget, err := r.client.UpdateBudget(ctx, r.mutationCfg, id, mapper.ToBudgetWriteFromUpdate(req))
		if err != nil {
			return domain.BudgetDTO{}, err
		}
		return mapper.ToBudgetDTO(budget), nil
	})
}

// PatchBudget partially updates a budget
func (r *Runner) PatchBudget(ctx context.Context, id uuid.UUID, req *domain.PatchBudgetRequest) (domain.BudgetDTO, error) {
	endpoint := "/budgets/" + id.String() + "/"
	o := op{resource: budgetsResource, action: "budgets.patch", endpoint: endpoint, method: http.MethodPatch}
	return mutate(ctx, r, o, domain.TagBudgets, req, func(ctx context.Context) (domain.BudgetDTO, error) {
		budget, err := r.client.PatchBudget(ctx, r.mutationCfg, id, mapper.ToBudgetPatch(req))
		if err != nil {
			return domain.BudgetDTO{}, err
		}
		return mapper.ToBudgetDTO(budget), nil
	})
}

// DeleteBudget deletes a budget
func (r *Runner) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	endpoint := "/budgets/" + id.String() + "/"
	o := op{resource: budgetsResource, action: "budgets.delete", endpoint: endpoint, method: http.MethodDelete}
	_, err := mutate(ctx, r, o, domain.TagBudgets, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteBudget(ctx, r.mutationCfg, id)
	})
	return err
}

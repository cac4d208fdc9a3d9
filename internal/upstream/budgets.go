package upstream

import (
	"context"

	"github.com/google/uuid"
)

const budgetsPath = "/budgets/"

// ListBudgets calls GET /budgets/
func (c *Client) ListBudgets(ctx context.Context, cfg CallConfig, params ListParams) (*List[Budget], error) {
	return getList[Budget](ctx, c, cfg, budgetsPath, params)
}

// GetBudget calls GET /budgets/{id}/
func (c *Client) GetBudget(ctx context.Context, cfg CallConfig, id uuid.UUID) (*Budget, error) {
	return getOne[Budget](ctx, c, cfg, budgetsPath+id.String()+"/")
}

// CreateBudget calls POST /budgets/
func (c *Client) CreateBudget(ctx context.Context, cfg CallConfig, w *BudgetWrite) (*Budget, error) {
	return postOne[Budget](ctx, c, cfg, budgetsPath, w)
}

// UpdateBudget calls PUT /budgets/{id}/
func (c *Client) UpdateBudget(ctx context.Context, cfg CallConfig, id uuid.UUID, w *BudgetWrite) (*Budget, error) {
	return putOne[Budget](ctx, c, cfg, budgetsPath+id.String()+"/", w)
}

// PatchBudget calls PATCH /budgets/{id}/
func (c *Client) PatchBudget(ctx context.Context, cfg CallConfig, id uuid.UUID, p *BudgetPatch) (*Budget, error) {
	return patchOne[Budget](ctx, c, cfg, budgetsPath+id.String()+"/", p)
}

// DeleteBudget calls DELETE /budgets/{id}/
func (c *Client) DeleteBudget(ctx context.Context, cfg CallConfig, id uuid.UUID) error {
	return deleteOne(ctx, c, cfg, budgetsPath+id.String()+"/")
}

package upstream

import (
	"context"

	"github.com/google/uuid"
)

const couponsPath = "/coupons/"

// ListCoupons calls GET /coupons/
func (c *Client) ListCoupons(ctx context.Context, cfg CallConfig, params ListParams) (*List[Coupon], error) {
	return getList[Coupon](ctx, c, cfg, couponsPath, params)
}

// GetCoupon calls GET /coupons/{id}/
func (c *Client) GetCoupon(ctx context.Context, cfg CallConfig, id uuid.UUID) (*Coupon, error) {
	return getOne[Coupon](ctx, c, cfg, couponsPath+id.String()+"/")
}

// CreateCoupon calls POST /coupons/
func (c *Client) CreateCoupon(ctx context.Context, cfg CallConfig, w *CouponWrite) (*Coupon, error) {
	return postOne[Coupon](ctx, c, cfg, couponsPath, w)
}

// DeleteCoupon calls DELETE /coupons/{id}/
func (c *Client) DeleteCoupon(ctx context.Context, cfg CallConfig, id uuid.UUID) error {
	return deleteOne(ctx, c, cfg, couponsPath+id.String()+"/")
}

// ApplyCoupon calls POST /coupons/{id}/apply/
func (c *Client) ApplyCoupon(ctx context.Context, cfg CallConfig, id uuid.UUID, body *CouponApply) (*CouponApplication, error) {
	return postOne[CouponApplication](ctx, c, cfg, couponsPath+id.String()+"/apply/", body)
}

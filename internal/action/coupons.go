package action

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
	"github.com/pocketledger/actions-api/internal/upstream"
)

const couponsResource = "coupons"

// ListCoupons returns a page of coupons
func (r *Runner) ListCoupons(ctx context.Context, opts domain.ListOptions) (domain.Paginated[domain.CouponDTO], error) {
	o := op{resource: couponsResource, action: "coupons.list", endpoint: "/coupons/", method: http.MethodGet}
	return query(ctx, r, o, domain.TagCoupons, listKey("/coupons/", opts), opts, func(ctx context.Context) (domain.Paginated[domain.CouponDTO], error) {
		list, err := r.client.ListCoupons(ctx, r.queryCfg, mapper.ToListParams(opts))
		if err != nil {
			return domain.Paginated[domain.CouponDTO]{}, err
		}
		return mapper.ToPaginated(list, mapper.ToCouponDTO), nil
	})
}

// GetCoupon returns one coupon by ID
func (r *Runner) GetCoupon(ctx context.Context, id uuid.UUID) (domain.CouponDTO, error) {
	endpoint := "/coupons/" + id.String() + "/"
	o := op{resource: couponsResource, action: "coupons.get", endpoint: endpoint, method: http.MethodGet}
	return query(ctx, r, o, domain.TagCoupons, endpoint, nil, func(ctx context.Context) (domain.CouponDTO, error) {
		coupon, err := r.client.GetCoupon(ctx, r.queryCfg, id)
		if err != nil {
			return domain.CouponDTO{}, err
		}
		return mapper.ToCouponDTO(coupon), nil
	})
}

// CreateCoupon creates a coupon
func (r *Runner) CreateCoupon(ctx context.Context, req *domain.CreateCouponRequest) (domain.CouponDTO, error) {
	o := op{resource: couponsResource, action: "coupons.create", endpoint: "/coupons/", method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagCoupons, req, func(ctx context.Context) (domain.CouponDTO, error) {
		coupon, err := r.client.CreateCoupon(ctx, r.mutationCfg, mapper.ToCouponWrite(req))
		if err != nil {
			return domain.CouponDTO{}, err
		}
		return mapper.ToCouponDTO(coupon), nil
	})
}

// DeleteCoupon deletes a coupon
func (r *Runner) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	endpoint := "/coupons/" + id.String() + "/"
	o := op{resource: couponsResource, action: "coupons.delete", endpoint: endpoint, method: http.MethodDelete}
	_, err := mutate(ctx, r, o, domain.TagCoupons, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.DeleteCoupon(ctx, r.mutationCfg, id)
	})
	return err
}

// ApplyCoupon applies a coupon to an account. The coupons tag set includes
// accounts, so account balances cached before the application are dropped
// too.
func (r *Runner) ApplyCoupon(ctx context.Context, id uuid.UUID, req *domain.ApplyCouponRequest) (domain.CouponApplicationDTO, error) {
	endpoint := "/coupons/" + id.String() + "/apply/"
	o := op{resource: couponsResource, action: "coupons.apply", endpoint: endpoint, method: http.MethodPost}
	return mutate(ctx, r, o, domain.TagCoupons, req, func(ctx context.Context) (domain.CouponApplicationDTO, error) {
		result, err := r.client.ApplyCoupon(ctx, r.mutationCfg, id, &upstream.CouponApply{AccountID: req.AccountID})
		if err != nil {
			return domain.CouponApplicationDTO{}, err
		}
		return mapper.ToCouponApplicationDTO(result), nil
	})
}

package action

import (
	"context"
	"net/http"

	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
	"github.com/pocketledger/actions-api/internal/upstream"
)

const authResource = "auth"

// CreateToken exchanges credentials for an access/refresh token pair.
// Token responses are never cached.
func (r *Runner) CreateToken(ctx context.Context, req *domain.CreateTokenRequest) (domain.TokenPairDTO, error) {
	o := op{resource: authResource, action: "auth.create", endpoint: "/auth/jwt/create/", method: http.MethodPost}
	return call(ctx, r, o, req, func(ctx context.Context) (domain.TokenPairDTO, error) {
		pair, err := r.client.CreateToken(ctx, r.authCfg, &upstream.TokenCreate{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return domain.TokenPairDTO{}, err
		}
		return mapper.ToTokenPairDTO(pair), nil
	})
}

// RefreshToken exchanges a refresh token for a new access token
func (r *Runner) RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (domain.TokenPairDTO, error) {
	o := op{resource: authResource, action: "auth.refresh", endpoint: "/auth/jwt/refresh/", method: http.MethodPost}
	return call(ctx, r, o, req, func(ctx context.Context) (domain.TokenPairDTO, error) {
		pair, err := r.client.RefreshToken(ctx, r.authCfg, &upstream.TokenRefresh{Refresh: req.Refresh})
		if err != nil {
			return domain.TokenPairDTO{}, err
		}
		return mapper.ToTokenPairDTO(pair), nil
	})
}

// VerifyToken asks the core API whether a token is currently valid
func (r *Runner) VerifyToken(ctx context.Context, req *domain.VerifyTokenRequest) error {
	o := op{resource: authResource, action: "auth.verify", endpoint: "/auth/jwt/verify/", method: http.MethodPost}
	_, err := call(ctx, r, o, req, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.client.VerifyToken(ctx, r.authCfg, &upstream.TokenVerify{Token: req.Token})
	})
	return err
}

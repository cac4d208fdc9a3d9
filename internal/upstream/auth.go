package upstream

import (
	"context"
	"net/http"
)

// CreateToken calls POST /auth/jwt/create/
func (c *Client) CreateToken(ctx context.Context, cfg CallConfig, body *TokenCreate) (*TokenPair, error) {
	return postOne[TokenPair](ctx, c, cfg, "/auth/jwt/create/", body)
}

// RefreshToken calls POST /auth/jwt/refresh/
func (c *Client) RefreshToken(ctx context.Context, cfg CallConfig, body *TokenRefresh) (*TokenPair, error) {
	return postOne[TokenPair](ctx, c, cfg, "/auth/jwt/refresh/", body)
}

// VerifyToken calls POST /auth/jwt/verify/. The core API answers an empty
// object on success and 401 on a bad token.
func (c *Client) VerifyToken(ctx context.Context, cfg CallConfig, body *TokenVerify) error {
	return c.do(ctx, cfg, http.MethodPost, "/auth/jwt/verify/", nil, body, nil)
}

package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTVerifier verifies access tokens issued by the core API's token
// service. Tokens are HS256-signed with a shared secret; the gateway never
// issues tokens itself.
type JWTVerifier struct {
	config *config.AuthConfig
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier
func NewJWTVerifier(cfg *config.AuthConfig) *JWTVerifier {
	return &JWTVerifier{
		config: cfg,
		secret: []byte(cfg.Secret),
	}
}

// VerifyToken verifies an access token and returns the user context
func (v *JWTVerifier) VerifyToken(tokenString string) (*UserContext, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.config.LeewayDuration()),
		jwt.WithExpirationRequired(),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userCtx := &UserContext{
		Email: extractString(claims, "email"),
	}

	// The core API puts the user's UUID in user_id, falling back to sub
	if idStr := extractString(claims, "user_id", "sub"); idStr != "" {
		uid, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed user id claim", ErrInvalidToken)
		}
		userCtx.UserID = uid
	} else {
		return nil, fmt.Errorf("%w: missing user id claim", ErrInvalidToken)
	}

	return userCtx, nil
}

// extractString returns the first non-empty string claim among the keys
func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func defaultClaims(userID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
}

func newVerifier() *auth.JWTVerifier {
	return auth.NewJWTVerifier(&config.AuthConfig{Secret: testSecret, Leeway: 30})
}

func TestJWTVerifier_ValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), defaultClaims(userID))

	userCtx, err := newVerifier().VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "user@example.com", userCtx.Email)
	assert.False(t, userCtx.IsAdmin)
}

func TestJWTVerifier_UserIDFromSubClaim(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	userCtx, err := newVerifier().VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
}

func TestJWTVerifier_ExpiredToken(t *testing.T) {
	claims := defaultClaims(uuid.New())
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	_, err := newVerifier().VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestJWTVerifier_MissingExpiration(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": uuid.New().String(),
	})

	_, err := newVerifier().VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), defaultClaims(uuid.New()))

	_, err := newVerifier().VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_RejectsUnexpectedAlgorithm(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS512, []byte(testSecret), defaultClaims(uuid.New()))

	_, err := newVerifier().VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_MissingUserIDClaim(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := newVerifier().VerifyToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestJWTVerifier_MalformedUserIDClaim(t *testing.T) {
	claims := defaultClaims(uuid.New())
	claims["user_id"] = "not-a-uuid"
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	_, err := newVerifier().VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_IssuerCheck(t *testing.T) {
	verifier := auth.NewJWTVerifier(&config.AuthConfig{
		Secret: testSecret,
		Issuer: "pocketledger-core",
	})

	claims := defaultClaims(uuid.New())
	claims["iss"] = "pocketledger-core"
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
	_, err := verifier.VerifyToken(token)
	assert.NoError(t, err)

	claims["iss"] = "someone-else"
	token = signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_LeewayToleratesSkew(t *testing.T) {
	claims := defaultClaims(uuid.New())
	claims["exp"] = time.Now().Add(-10 * time.Second).Unix()
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	_, err := newVerifier().VerifyToken(token)
	assert.NoError(t, err, "expiry within leeway should pass")
}

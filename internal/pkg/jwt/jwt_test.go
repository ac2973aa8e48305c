package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret", "1h", "24h", false)
}

func TestGenerateAccessToken_PrincipalRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("u-1", "jane", "jane@example.com", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Positive(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	principal, err := PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", principal.UserID)
	assert.Equal(t, "jane", principal.Username)
	assert.True(t, principal.IsAdmin())
}

func TestPrincipalFromContext_NoToken(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	assert.ErrorIs(t, err, ErrClaimsMissing)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	again, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, again)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	access, _, err := svc.GenerateAccessToken("u-1", "jane", "jane@example.com", user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	other := NewJWTService("other-secret", "1h", "24h", false)
	refresh, _, err := other.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	_, err = newTestService().ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService("s", "1h", "24h", true)

	cookie := svc.RefreshTokenCookie("tok", 1700000000)
	assert.Equal(t, RefreshTokenCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	expired := svc.ExpiredRefreshTokenCookie()
	assert.Equal(t, -1, expired.MaxAge)
	assert.Empty(t, expired.Value)
}

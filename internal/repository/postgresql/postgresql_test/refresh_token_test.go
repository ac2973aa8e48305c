package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_Lifecycle(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewRefreshTokenRepository(testDB)
	u := createTestUser(t, ctx, "jane", user.RoleEmployee)

	session := auth.SessionTrackingRequest{UserAgent: "test", IPAddress: "127.0.0.1"}
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "live-token", time.Now().Add(time.Hour).Unix(), session))
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "stale-token", time.Now().Add(-time.Hour).Unix(), session))

	revoked, err := repo.IsRefreshTokenRevoked(ctx, "live-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = repo.IsRefreshTokenRevoked(ctx, "stale-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRefreshTokenRevoked(ctx, "unknown-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "live-token"))
	revoked, err = repo.IsRefreshTokenRevoked(ctx, "live-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	purged, err := repo.PurgeExpired(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)
}

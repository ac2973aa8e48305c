package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists refresh tokens by hash so that logout can
// revoke them before expiry.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// IsRefreshTokenRevoked is true for revoked, expired or unknown tokens
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// PurgeExpired deletes tokens that expired or were revoked before cutoff
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

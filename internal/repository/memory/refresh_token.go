package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revokedAt *time.Time
}

type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*refreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]*refreshToken)}
}

func (r *RefreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *RefreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[token]
	if !ok {
		return true, nil
	}
	return t.revokedAt != nil || !t.expiresAt.After(time.Now()), nil
}

func (r *RefreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tokens[token]; ok && t.revokedAt == nil {
		now := time.Now()
		t.revokedAt = &now
	}
	return nil
}

func (r *RefreshTokenRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k, t := range r.tokens {
		if t.expiresAt.Before(cutoff) || (t.revokedAt != nil && t.revokedAt.Before(cutoff)) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

var _ auth.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

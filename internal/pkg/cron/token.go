package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

const (
	purgeInterval = 6 * time.Hour
	purgeTimeout  = time.Minute
	// revoked and expired tokens are kept this long for auditing
	purgeRetention = 24 * time.Hour
)

type TokenJobs struct {
	refreshTokenRepo auth.RefreshTokenRepository
	now              func() time.Time
}

func NewTokenJobs(refreshTokenRepo auth.RefreshTokenRepository, now func() time.Time) *TokenJobs {
	if now == nil {
		now = time.Now
	}
	return &TokenJobs{refreshTokenRepo: refreshTokenRepo, now: now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_refresh_tokens", purgeInterval, purgeTimeout, j.PurgeRefreshTokens)
}

// PurgeRefreshTokens deletes refresh tokens that expired or were revoked
// more than purgeRetention ago.
func (j *TokenJobs) PurgeRefreshTokens(ctx context.Context) error {
	cutoff := j.now().Add(-purgeRetention)

	purged, err := j.refreshTokenRepo.PurgeExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge refresh tokens: %w", err)
	}
	if purged > 0 {
		slog.Info("Cron: purged refresh tokens", "count", purged, "cutoff", cutoff)
	}
	return nil
}

package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32
	boom := errors.New("boom")

	s.AddJob("ok", time.Hour, 0, func(context.Context) error { ran.Add(1); return nil })
	s.AddJob("fails", time.Hour, 0, func(context.Context) error { ran.Add(1); return boom })

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "fails")
	assert.EqualValues(t, 2, ran.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, time.Second, func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

func TestTokenJobs_PurgeRefreshTokens(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRefreshTokenRepository()
	now := time.Now()

	session := auth.SessionTrackingRequest{}
	require.NoError(t, repo.CreateRefreshToken(ctx, "u1", "old", now.Add(-48*time.Hour).Unix(), session))
	require.NoError(t, repo.CreateRefreshToken(ctx, "u1", "recently-expired", now.Add(-time.Hour).Unix(), session))
	require.NoError(t, repo.CreateRefreshToken(ctx, "u1", "live", now.Add(time.Hour).Unix(), session))

	jobs := NewTokenJobs(repo, func() time.Time { return now })
	s := NewScheduler()
	jobs.RegisterJobs(s)
	require.NoError(t, s.RunOnce(ctx))

	revoked, err := repo.IsRefreshTokenRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)

	purged, err := repo.PurgeExpired(ctx, now.Add(-purgeRetention))
	require.NoError(t, err)
	assert.Zero(t, purged, "old token was already purged")

	purged, err = repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged, "recently expired token was retained")
}

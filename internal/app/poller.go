package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/rgodse/claimdesk/internal/api"
	"github.com/rgodse/claimdesk/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately. Polls are skipped while no auth
// token is available, and failed polls back off exponentially.
func StartPoller(ctx context.Context, store *state.Store, auth *api.AuthClient, tokens api.TokenSource, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			if tokens.Token() != "" {
				refresh(ctx, store, auth, logger)
			}

			wait := interval
			if failures := store.Snapshot().ConsecutiveFailures; failures > 0 {
				wait = calculateBackoff(failures, interval)
			}

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, auth *api.AuthClient, logger *slog.Logger) {
	list, err := auth.GetClaims(ctx)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("claims poll failed", "error", err)
		return
	}
	store.Update(list, nil)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

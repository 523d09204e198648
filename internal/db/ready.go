package db

import (
	"context"
	"fmt"
	"time"
)

// Readiness defaults: the backend gets ten seconds to report healthy, polled
// every half second.
const (
	DefaultReadinessTimeout  = 10 * time.Second
	DefaultReadinessInterval = 500 * time.Millisecond
)

// WaitForReady polls Ping on one session until the backend responds or the
// timeout expires.
func WaitForReady(ctx context.Context, p SessionProvider, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultReadinessTimeout
	}
	if interval <= 0 {
		interval = DefaultReadinessInterval
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := WithSession(ctx, p, func(s Session) (struct{}, error) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var lastErr error
		for {
			if lastErr = s.Ping(ctx); lastErr == nil {
				return struct{}{}, nil
			}
			select {
			case <-ctx.Done():
				return struct{}{}, fmt.Errorf("%w after %s: %w", ErrBackendNotReady, timeout, lastErr)
			case <-ticker.C:
			}
		}
	})
	return err
}

// ProviderPinger pings the backend through a fresh session per call.
type ProviderPinger struct {
	Provider SessionProvider
}

// Ping acquires a session, pings and releases it.
func (p ProviderPinger) Ping(ctx context.Context) error {
	_, err := WithSession(ctx, p.Provider, func(s Session) (struct{}, error) {
		return struct{}{}, s.Ping(ctx)
	})
	return err
}

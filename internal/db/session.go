package db

import (
	"context"
	"fmt"
	"sync/atomic"
)

// WithSession acquires a session, runs fn with it and releases it on every
// exit path, including panics.
func WithSession[R any](ctx context.Context, p SessionProvider, fn func(Session) (R, error)) (R, error) {
	var zero R

	s, release, err := p.Acquire(ctx)
	if err != nil {
		return zero, fmt.Errorf("acquire session: %w", err)
	}
	defer release()

	return fn(s)
}

// Guard tracks the lifetime of a scoped session. Drivers embed it and call
// Check before touching the backend.
type Guard struct {
	released atomic.Bool
}

// Release marks the session as released. Safe to call more than once.
func (g *Guard) Release() { g.released.Store(true) }

// Check returns ErrSessionClosed once the session has been released.
func (g *Guard) Check() error {
	if g.released.Load() {
		return ErrSessionClosed
	}
	return nil
}

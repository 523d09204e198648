package db

import (
	"context"
	"errors"
	"testing"
)

func TestWithSession_ReleasesOnSuccess(t *testing.T) {
	p := &mockProvider{}

	got, err := WithSession(context.Background(), p, func(s Session) (string, error) {
		if err := s.Ping(context.Background()); err != nil {
			return "", err
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q", got)
	}
	if p.acquired.Load() != 1 || p.released.Load() != 1 {
		t.Errorf("acquired=%d released=%d", p.acquired.Load(), p.released.Load())
	}
}

func TestWithSession_ReleasesOnError(t *testing.T) {
	p := &mockProvider{}
	boom := errors.New("boom")

	_, err := WithSession(context.Background(), p, func(_ Session) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if p.released.Load() != 1 {
		t.Errorf("released=%d, want 1", p.released.Load())
	}
}

func TestWithSession_ReleasesOnPanic(t *testing.T) {
	p := &mockProvider{}

	func() {
		defer func() { _ = recover() }()
		_, _ = WithSession(context.Background(), p, func(_ Session) (int, error) {
			panic("mapping exploded")
		})
	}()

	if p.released.Load() != 1 {
		t.Errorf("released=%d, want 1", p.released.Load())
	}
}

func TestWithSession_AcquireError(t *testing.T) {
	p := &mockProvider{acquireErr: errors.New("dial tcp: refused")}
	called := false

	_, err := WithSession(context.Background(), p, func(_ Session) (int, error) {
		called = true
		return 0, nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("fn must not run when acquire fails")
	}
}

func TestWithSession_HandleUnusableAfterRelease(t *testing.T) {
	p := &mockProvider{}

	var leaked Session
	_, err := WithSession(context.Background(), p, func(s Session) (int, error) {
		leaked = s
		return 0, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := leaked.Search(context.Background(), &SearchRequest{}); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestGuard_ReleaseIdempotent(t *testing.T) {
	var g Guard
	if err := g.Check(); err != nil {
		t.Fatalf("fresh guard: %v", err)
	}
	g.Release()
	g.Release()
	if !errors.Is(g.Check(), ErrSessionClosed) {
		t.Fatal("expected ErrSessionClosed")
	}
}

package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWaitForReady_Immediate(t *testing.T) {
	p := &mockProvider{}

	if err := WaitForReady(context.Background(), p, time.Second, 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.acquired.Load() != 1 || p.released.Load() != 1 {
		t.Errorf("expected one scoped session, acquired=%d released=%d", p.acquired.Load(), p.released.Load())
	}
}

func TestWaitForReady_EventuallyHealthy(t *testing.T) {
	var calls atomic.Int32
	p := &mockProvider{session: func() *mockSession {
		return &mockSession{pingFn: func(_ context.Context) error {
			if calls.Add(1) < 3 {
				return errors.New("connection refused")
			}
			return nil
		}}
	}}

	if err := WaitForReady(context.Background(), p, time.Second, 5*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("ping calls = %d, want 3", calls.Load())
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	p := &mockProvider{session: func() *mockSession {
		return &mockSession{pingFn: func(_ context.Context) error {
			return errors.New("connection refused")
		}}
	}}

	start := time.Now()
	err := WaitForReady(context.Background(), p, 50*time.Millisecond, 10*time.Millisecond)
	if !errors.Is(err, ErrBackendNotReady) {
		t.Fatalf("expected ErrBackendNotReady, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("deadline not honoured: %s", elapsed)
	}
	if p.released.Load() != 1 {
		t.Errorf("released=%d, want 1", p.released.Load())
	}
}

func TestCatalogSchema_DependencyOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range CatalogSchema() {
		for _, f := range s.Fields {
			if f.Reference == "" {
				continue
			}
			ref := f.ReferencedCollection()
			if ref != s.Name && !seen[ref] {
				t.Errorf("%s.%s references %s before it is declared", s.Name, f.Name, ref)
			}
		}
		seen[s.Name] = true
	}
	if _, ok := LookupSchema(CollectionProducts); !ok {
		t.Error("products schema missing")
	}
}

func TestProviderPinger(t *testing.T) {
	pingErr := errors.New("connection refused")
	p := &mockProvider{session: func() *mockSession {
		return &mockSession{pingFn: func(_ context.Context) error { return pingErr }}
	}}

	err := ProviderPinger{Provider: p}.Ping(context.Background())
	if !errors.Is(err, pingErr) {
		t.Fatalf("expected ping error, got %v", err)
	}
	if p.acquired.Load() != 1 || p.released.Load() != 1 {
		t.Errorf("acquired=%d released=%d", p.acquired.Load(), p.released.Load())
	}
}

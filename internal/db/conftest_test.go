package db

import (
	"context"
	"sync/atomic"
)

// mockSession implements Session with overridable functions.
type mockSession struct {
	Guard
	pingFn   func(ctx context.Context) error
	searchFn func(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}

func (m *mockSession) Ping(ctx context.Context) error {
	if err := m.Check(); err != nil {
		return err
	}
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockSession) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &SearchResult{}, nil
}

func (m *mockSession) CreateCollection(_ context.Context, _ *CollectionSchema) error { return m.Check() }

func (m *mockSession) CollectionExists(_ context.Context, _ string) (bool, error) {
	return false, m.Check()
}

func (m *mockSession) Import(_ context.Context, _ string, _ []Document) error { return m.Check() }

// mockProvider hands out a fresh mockSession per Acquire and counts releases.
type mockProvider struct {
	acquireErr error
	session    func() *mockSession
	acquired   atomic.Int32
	released   atomic.Int32
	last       *mockSession
}

func (p *mockProvider) Acquire(_ context.Context) (Session, func(), error) {
	if p.acquireErr != nil {
		return nil, nil, p.acquireErr
	}
	s := &mockSession{}
	if p.session != nil {
		s = p.session()
	}
	p.last = s
	p.acquired.Add(1)
	return s, func() {
		s.Release()
		p.released.Add(1)
	}, nil
}

package product

import (
	"context"
	"testing"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// mockSession implements db.Session for tests; only Search is exercised.
type mockSession struct {
	db.Guard
	searchFn func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

func (m *mockSession) Ping(context.Context) error { return m.Check() }

func (m *mockSession) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

func (m *mockSession) CreateCollection(context.Context, *db.CollectionSchema) error { return nil }

func (m *mockSession) CollectionExists(context.Context, string) (bool, error) { return true, nil }

func (m *mockSession) Import(context.Context, string, []db.Document) error { return nil }

// mockProvider hands out one fresh mockSession per acquisition.
type mockProvider struct {
	searchFn   func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
	acquireErr error
	acquired   int
	released   int
}

func (m *mockProvider) Acquire(context.Context) (db.Session, func(), error) {
	if m.acquireErr != nil {
		return nil, nil, m.acquireErr
	}
	m.acquired++
	s := &mockSession{searchFn: m.searchFn}
	return s, func() {
		m.released++
		s.Release()
	}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockProvider) {
	t.Helper()
	mp := &mockProvider{}
	return New(mp), mp
}

func hits(docs ...db.Document) *db.SearchResult {
	res := &db.SearchResult{Found: len(docs)}
	for _, d := range docs {
		res.Hits = append(res.Hits, db.Hit{Document: d})
	}
	return res
}

// Fixture documents shaped like a Typesense hit with IncludeFields applied.

func toolsDoc() db.Document {
	return db.Document{"id": "10", "title": "Tools", "subcategory": false}
}

func wrenchesDoc() db.Document {
	return db.Document{
		"id": "11", "title": "Wrenches", "subcategory": true, "product_category_id": "10",
		"product_categories": toolsDoc(),
	}
}

func acmeDoc() db.Document {
	return db.Document{"id": "1", "title": "Acme", "image_url": "https://img.example.com/acme.png"}
}

func modelDoc() db.Document {
	return db.Document{
		"id": "7", "sku": "M1", "title": "Socket wrench", "description": "Half-inch drive",
		"image_url": "https://img.example.com/m1.png", "min_price": 9.99,
		"product_category_id": "11", "product_manufacturer_id": "1",
		"product_categories":    wrenchesDoc(),
		"product_manufacturers": acmeDoc(),
	}
}

func productDoc(sku string) db.Document {
	return db.Document{
		"id": "100", "sku": sku, "title": "Socket wrench 10mm", "description": "Chrome vanadium",
		"image_url": "https://img.example.com/" + sku + ".png", "price": 12.5,
		"stock": true, "num_purchases": 42.0, "product_model_id": "7",
		"product_models": modelDoc(),
	}
}

// nested returns the sub-document at the given collection path.
func nested(doc db.Document, path ...string) db.Document {
	cur := doc
	for _, p := range path {
		cur = cur[p].(db.Document)
	}
	return cur
}

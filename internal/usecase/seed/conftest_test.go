package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// mockSession records schema and import calls.
type mockSession struct {
	db.Guard
	existing map[string]bool
	existsFn func(ctx context.Context, name string) (bool, error)
	createFn func(ctx context.Context, schema *db.CollectionSchema) error
	importFn func(ctx context.Context, collection string, docs []db.Document) error

	created  []string
	imported []string
}

func (m *mockSession) Ping(context.Context) error { return m.Check() }

func (m *mockSession) Search(context.Context, *db.SearchRequest) (*db.SearchResult, error) {
	return &db.SearchResult{}, m.Check()
}

func (m *mockSession) CreateCollection(ctx context.Context, schema *db.CollectionSchema) error {
	if err := m.Check(); err != nil {
		return err
	}
	if m.createFn != nil {
		if err := m.createFn(ctx, schema); err != nil {
			return err
		}
	}
	m.created = append(m.created, schema.Name)
	return nil
}

func (m *mockSession) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := m.Check(); err != nil {
		return false, err
	}
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	return m.existing[name], nil
}

func (m *mockSession) Import(ctx context.Context, collection string, docs []db.Document) error {
	if err := m.Check(); err != nil {
		return err
	}
	if m.importFn != nil {
		if err := m.importFn(ctx, collection, docs); err != nil {
			return err
		}
	}
	m.imported = append(m.imported, collection)
	return nil
}

// mockProvider always hands out the same session.
type mockProvider struct {
	session  *mockSession
	released int
}

func (p *mockProvider) Acquire(context.Context) (db.Session, func(), error) {
	return p.session, func() { p.released++ }, nil
}

func newTestService(t *testing.T) (*Service, *mockSession, *mockProvider) {
	t.Helper()
	ms := &mockSession{existing: map[string]bool{}}
	mp := &mockProvider{session: ms}
	return New(mp, zap.NewNop()), ms, mp
}

func seedFS() fstest.MapFS {
	return fstest.MapFS{
		"product_manufacturers.jsonl": {Data: []byte(
			`{"id": "1", "title": "Acme", "image_url": "https://img.example.com/acme.png"}` + "\n",
		)},
		"product_categories.jsonl": {Data: []byte(
			`{"id": "10", "title": "Tools", "subcategory": false}` + "\n",
		)},
		"product_subcategories.jsonl": {Data: []byte(
			`{"id": "11", "title": "Wrenches", "subcategory": true, "product_category_id": "10"}` + "\n",
		)},
		"product_models.jsonl": {Data: []byte(
			`{"id": "7", "sku": "M1", "title": "Socket wrench", "description": "Half-inch drive",` +
				` "image_url": "https://img.example.com/m1.png", "product_category_id": "11",` +
				` "product_manufacturer_id": "1", "min_price": 9.99}` + "\n",
		)},
		"products.jsonl": {Data: []byte(
			"\n" +
				`{"id": "100", "sku": "P1", "title": "Socket wrench 10mm", "description": "Chrome vanadium",` +
				` "image_url": "https://img.example.com/p1.png", "price": 12.5, "product_model_id": "7",` +
				` "stock": true, "num_purchases": 0}` + "\n" +
				`{"id": "101", "sku": "P2", "title": "Socket wrench 13mm", "description": "Chrome vanadium",` +
				` "image_url": "https://img.example.com/p2.png", "price": 13.5, "product_model_id": "7",` +
				` "stock": false, "num_purchases": 0}` + "\n",
		)},
	}
}

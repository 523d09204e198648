package storecatalog

import (
	"context"
	"io/fs"
	"testing"

	"github.com/kailas-cloud/storecatalog/internal/domain/catalog"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/storecatalog/internal/usecase/health"
	seeduc "github.com/kailas-cloud/storecatalog/internal/usecase/seed"
)

// --- productUseCase mock ---

type mockProductUC struct {
	searchFn func(ctx context.Context, q query.Query) (result.Result, error)
}

func (m *mockProductUC) Search(ctx context.Context, q query.Query) (result.Result, error) {
	return m.searchFn(ctx, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	migrateFn func(ctx context.Context) ([]string, error)
	seedFn    func(ctx context.Context, fsys fs.FS) (seeduc.Stats, error)
}

func (m *mockCatalogUC) Migrate(ctx context.Context) ([]string, error) { return m.migrateFn(ctx) }

func (m *mockCatalogUC) Seed(ctx context.Context, fsys fs.FS) (seeduc.Stats, error) {
	return m.seedFn(ctx, fsys)
}

func sampleProduct(t *testing.T, sku string) catalog.Product {
	t.Helper()
	tools, err := catalog.NewCategory(10, "Tools")
	if err != nil {
		t.Fatalf("NewCategory: %v", err)
	}
	wrenches, err := catalog.NewSubcategory(11, "Wrenches", tools)
	if err != nil {
		t.Fatalf("NewSubcategory: %v", err)
	}
	acme, err := catalog.NewManufacturer(1, "Acme", "https://img.example.com/acme.png")
	if err != nil {
		t.Fatalf("NewManufacturer: %v", err)
	}
	model, err := catalog.NewModel(catalog.ModelParams{
		SKU: "M1", Title: "Socket wrench", Description: "Half-inch drive",
		Image: "https://img.example.com/m1.png", MinPrice: 9.99,
		Category: wrenches, Manufacturer: acme,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	p, err := catalog.NewProduct(catalog.ProductParams{
		SKU: sku, Title: "Socket wrench 10mm", Description: "Chrome vanadium",
		Image: "https://img.example.com/p.png", Price: 12.5, Model: model, Stock: true,
	})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

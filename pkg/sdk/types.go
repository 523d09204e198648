package storecatalog

import "github.com/kailas-cloud/storecatalog/internal/domain/catalog"

// Manufacturer produces product models.
type Manufacturer struct {
	ID    int64
	Title string
	Image string
}

// Category groups models. Parent is set for subcategories only.
type Category struct {
	ID            int64
	Title         string
	IsSubcategory bool
	Parent        *Category
}

// Model is a product family shared by its product variants.
type Model struct {
	SKU          string
	Title        string
	Description  string
	Image        string
	MinPrice     float64
	Category     Category
	Manufacturer Manufacturer
}

// Product is a sellable catalog item with its resolved model.
type Product struct {
	SKU          string
	Title        string
	Description  string
	Image        string
	Price        float64
	Stock        bool
	NumPurchases int64
	Model        Model
}

// ListQuery selects products by free text. Zero values mean: match the whole
// catalog on the title field with the backend's default paging.
type ListQuery struct {
	Text     string
	Field    string
	FilterBy string
	SortBy   string
	Page     int
	PerPage  int
}

// SearchRequest is either an exact SKU lookup (SKU set) or a ListQuery.
type SearchRequest struct {
	SKU   string
	Query ListQuery
}

func fromProduct(p catalog.Product) Product {
	m := p.Model()
	return Product{
		SKU:          p.SKU(),
		Title:        p.Title(),
		Description:  p.Description(),
		Image:        p.Image(),
		Price:        p.Price(),
		Stock:        p.InStock(),
		NumPurchases: p.NumPurchases(),
		Model: Model{
			SKU:          m.SKU(),
			Title:        m.Title(),
			Description:  m.Description(),
			Image:        m.Image(),
			MinPrice:     m.MinPrice(),
			Category:     fromCategory(m.Category()),
			Manufacturer: fromManufacturer(m.Manufacturer()),
		},
	}
}

func fromProducts(ps []catalog.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = fromProduct(p)
	}
	return out
}

func fromCategory(c catalog.Category) Category {
	out := Category{ID: c.ID(), Title: c.Title(), IsSubcategory: c.IsSubcategory()}
	if parent, ok := c.Parent(); ok {
		pc := fromCategory(parent)
		out.Parent = &pc
	}
	return out
}

func fromManufacturer(m catalog.Manufacturer) Manufacturer {
	return Manufacturer{ID: m.ID(), Title: m.Title(), Image: m.Image()}
}

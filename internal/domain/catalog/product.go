// Package catalog holds the product catalog domain model: products, their
// models, categories and manufacturers. All types are immutable once built.
package catalog

import "net/url"

// Product is a sellable catalog item. It aggregates a snapshot of its model;
// it does not own the model's identity.
type Product struct {
	sku          string
	title        string
	description  string
	image        *url.URL
	price        float64
	model        Model
	stock        bool
	numPurchases int64
}

// ProductParams holds the raw fields of a product.
type ProductParams struct {
	SKU          string
	Title        string
	Description  string
	Image        string
	Price        float64
	Model        Model
	Stock        bool
	NumPurchases int64
}

// NewProduct validates and creates a Product.
func NewProduct(p ProductParams) (Product, error) {
	if err := requireText("product sku", p.SKU); err != nil {
		return Product{}, err
	}
	if err := requireText("product title", p.Title); err != nil {
		return Product{}, err
	}
	if err := requireText("product description", p.Description); err != nil {
		return Product{}, err
	}
	u, err := parseImage("product image", p.Image)
	if err != nil {
		return Product{}, err
	}
	if err := requireNonNegative("product price", p.Price); err != nil {
		return Product{}, err
	}
	if p.Model.SKU() == "" {
		return Product{}, invalid("product %q requires a model", p.SKU)
	}
	if p.NumPurchases < 0 {
		return Product{}, invalid("product %q purchases must be non-negative, got %d", p.SKU, p.NumPurchases)
	}

	return Product{
		sku:          p.SKU,
		title:        p.Title,
		description:  p.Description,
		image:        u,
		price:        p.Price,
		model:        p.Model,
		stock:        p.Stock,
		numPurchases: p.NumPurchases,
	}, nil
}

// SKU returns the product stock-keeping unit (primary lookup key).
func (p Product) SKU() string { return p.sku }

// Title returns the product title.
func (p Product) Title() string { return p.title }

// Description returns the product description.
func (p Product) Description() string { return p.description }

// Image returns the product image URL as a string.
func (p Product) Image() string {
	if p.image == nil {
		return ""
	}
	return p.image.String()
}

// Price returns the product price in euros.
func (p Product) Price() float64 { return p.price }

// Model returns the product model snapshot.
func (p Product) Model() Model { return p.model }

// InStock reports whether the product is in stock.
func (p Product) InStock() bool { return p.stock }

// NumPurchases returns the purchase counter projection.
func (p Product) NumPurchases() int64 { return p.numPurchases }

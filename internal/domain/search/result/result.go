package result

import "github.com/kailas-cloud/storecatalog/internal/domain/catalog"

// Result is the outcome of a catalog search: a single product for sku
// lookups, or an ordered list for free-text searches.
type Result struct {
	single   bool
	products []catalog.Product
}

// Single wraps the product returned by an exact lookup.
func Single(p catalog.Product) Result {
	return Result{single: true, products: []catalog.Product{p}}
}

// List wraps products in backend order.
func List(products []catalog.Product) Result {
	return Result{products: products}
}

// Product returns the product of a single result.
func (r Result) Product() (catalog.Product, bool) {
	if !r.single || len(r.products) == 0 {
		return catalog.Product{}, false
	}
	return r.products[0], true
}

// Products returns all products in the result.
func (r Result) Products() []catalog.Product { return r.products }

// IsSingle reports whether the result came from a sku lookup.
func (r Result) IsSingle() bool { return r.single }

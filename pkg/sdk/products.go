package storecatalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/result"
)

// productUseCase is the internal search contract the ProductService drives.
type productUseCase interface {
	Search(ctx context.Context, q query.Query) (result.Result, error)
}

// ProductService looks up and searches catalog products.
type ProductService struct {
	svc productUseCase
	obs *observer
}

// Get returns the product with the given SKU.
func (s *ProductService) Get(ctx context.Context, sku string) (p Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe(opGet, start, err, "sku", sku) }()

	q, err := query.BySKU(sku)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	res, err := s.svc.Search(ctx, q)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	found, ok := res.Product()
	if !ok {
		return Product{}, fmt.Errorf("get product %q: %w", sku, ErrProductNotFound)
	}
	return fromProduct(found), nil
}

// List returns the products matching q in backend order.
func (s *ProductService) List(ctx context.Context, q ListQuery) (ps []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe(opList, start, err, "query", q.Text) }()

	c, err := q.criteria()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	res, err := s.svc.Search(ctx, query.ByCriteria(c))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return fromProducts(res.Products()), nil
}

// Search runs a SKU lookup when req.SKU is set and a free-text list otherwise.
// A lookup yields at most one product.
func (s *ProductService) Search(ctx context.Context, req SearchRequest) (ps []Product, err error) {
	start := time.Now()
	defer func() { s.obs.observe(opSearch, start, err) }()

	var q query.Query
	if req.SKU != "" {
		q, err = query.BySKU(req.SKU)
	} else {
		var c query.Criteria
		c, err = req.Query.criteria()
		q = query.ByCriteria(c)
	}
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	res, err := s.svc.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return fromProducts(res.Products()), nil
}

func (q ListQuery) criteria() (query.Criteria, error) {
	params := map[string]string{
		query.ParamFilterBy: q.FilterBy,
		query.ParamSortBy:   q.SortBy,
	}
	if q.Page != 0 {
		params[query.ParamPage] = strconv.Itoa(q.Page)
	}
	if q.PerPage != 0 {
		params[query.ParamPerPage] = strconv.Itoa(q.PerPage)
	}
	//nolint:wrapcheck // callers add the operation context
	return query.NewCriteria(q.Text, q.Field, params)
}

// Package product implements the catalog search repository on top of a
// document-search backend session.
package product

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain"
	"github.com/kailas-cloud/storecatalog/internal/domain/catalog"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
)

// IncludeFields asks the backend to embed the model with its category
// chain and manufacturer in every product hit.
const IncludeFields = "$product_models(*, $product_categories(*, $product_categories(*)), $product_manufacturers(*))"

const skuField = "sku"

// Repo implements usecase/search.Repository.
type Repo struct {
	sessions db.SessionProvider
}

// New creates a product repository.
func New(p db.SessionProvider) *Repo {
	return &Repo{sessions: p}
}

// Get returns the single product with the given sku.
func (r *Repo) Get(ctx context.Context, sku string) (catalog.Product, error) {
	if sku == "" {
		return catalog.Product{}, fmt.Errorf("%w: sku is required", domain.ErrInvalidQuery)
	}

	res, err := r.search(ctx, &db.SearchRequest{
		Collection:    db.CollectionProducts,
		Query:         sku,
		QueryBy:       skuField,
		IncludeFields: IncludeFields,
		Exact:         true,
	})
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get %q: %w", sku, err)
	}

	matched := exactHits(res.Hits, sku)
	n := len(matched)
	if n == len(res.Hits) {
		// Every returned hit matched, so Found also counts unreturned ones.
		n = max(n, res.Found)
	}
	switch {
	case len(matched) == 0:
		return catalog.Product{}, fmt.Errorf("sku %q: %w", sku, domain.ErrProductNotFound)
	case n > 1:
		return catalog.Product{}, &domain.AmbiguousError{SKU: sku, Hits: n}
	}

	p, err := mapProduct(matched[0].Document)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get %q: %w", sku, err)
	}
	return p, nil
}

// exactHits drops hits whose sku is a string other than sku. Hits with a
// missing or malformed sku are kept so the mapper reports them.
func exactHits(hits []db.Hit, sku string) []db.Hit {
	out := make([]db.Hit, 0, len(hits))
	for _, h := range hits {
		if v, ok := h.Document[skuField].(string); ok && v != sku {
			continue
		}
		out = append(out, h)
	}
	return out
}

// List returns the products matching the criteria in backend order. Without
// an explicit page or per_page every match is returned, fetched MaxPerPage
// at a time.
func (r *Repo) List(ctx context.Context, c query.Criteria) ([]catalog.Product, error) {
	if c.Text() == "" {
		c = query.All()
	}

	names := c.ParamNames()
	params := make(map[string]string, len(names)+2)
	for _, k := range names {
		params[k], _ = c.Param(k)
	}
	_, hasPage := params[query.ParamPage]
	_, hasPerPage := params[query.ParamPerPage]
	paged := hasPage || hasPerPage

	req := &db.SearchRequest{
		Collection:    db.CollectionProducts,
		Query:         c.Text(),
		QueryBy:       c.Field(),
		IncludeFields: IncludeFields,
		Params:        params,
	}

	products, err := db.WithSession(ctx, r.sessions, func(s db.Session) ([]catalog.Product, error) {
		if paged {
			res, err := s.Search(ctx, req)
			if err != nil {
				return nil, err
			}
			return mapHits(nil, res.Hits, 0)
		}
		return listAll(ctx, s, req)
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", c.Text(), err)
	}
	return products, nil
}

// listAll pages through req until Found products are collected or the
// backend returns an empty page.
func listAll(ctx context.Context, s db.Session, req *db.SearchRequest) ([]catalog.Product, error) {
	req.Params[query.ParamPerPage] = strconv.Itoa(query.MaxPerPage)

	var products []catalog.Product
	for page := 1; ; page++ {
		req.Params[query.ParamPage] = strconv.Itoa(page)
		res, err := s.Search(ctx, req)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped by List
		}
		if products == nil {
			products = make([]catalog.Product, 0, min(res.Found, query.MaxPerPage))
		}
		products, err = mapHits(products, res.Hits, len(products))
		if err != nil {
			return nil, err
		}
		if len(res.Hits) == 0 || len(products) >= res.Found {
			if len(products) < res.Found {
				return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf(
					"page %d came back empty after %d of %d products", page, len(products), res.Found)}
			}
			return products, nil
		}
	}
}

// mapHits appends the mapped hits to dst. offset numbers hits in errors.
func mapHits(dst []catalog.Product, hits []db.Hit, offset int) ([]catalog.Product, error) {
	if dst == nil {
		dst = make([]catalog.Product, 0, len(hits))
	}
	for i, hit := range hits {
		p, err := mapProduct(hit.Document)
		if err != nil {
			return nil, fmt.Errorf("hit %d: %w", offset+i, err)
		}
		dst = append(dst, p)
	}
	return dst, nil
}

func (r *Repo) search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	return db.WithSession(ctx, r.sessions, func(s db.Session) (*db.SearchResult, error) {
		return s.Search(ctx, req)
	})
}

package search

import (
	"context"

	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/result"
)

// Service answers catalog queries.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search dispatches a sku lookup to Get and anything else to List.
// Repository errors are returned as is.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Result, error) {
	if sku, ok := q.SKU(); ok {
		p, err := s.repo.Get(ctx, sku)
		if err != nil {
			return result.Result{}, err //nolint:wrapcheck // domain errors reach the caller undecorated
		}
		return result.Single(p), nil
	}

	products, err := s.repo.List(ctx, q.Criteria())
	if err != nil {
		return result.Result{}, err //nolint:wrapcheck // domain errors reach the caller undecorated
	}
	return result.List(products), nil
}

// Get returns one product by sku.
func (s *Service) Get(ctx context.Context, sku string) (result.Result, error) {
	q, err := query.BySKU(sku)
	if err != nil {
		return result.Result{}, err
	}
	return s.Search(ctx, q)
}

// List returns the products matching the criteria.
func (s *Service) List(ctx context.Context, c query.Criteria) (result.Result, error) {
	return s.Search(ctx, query.ByCriteria(c))
}

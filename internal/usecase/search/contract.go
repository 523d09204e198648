package search

import (
	"context"

	"github.com/kailas-cloud/storecatalog/internal/domain/catalog"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
)

// Repository defines the storage contract for catalog search.
type Repository interface {
	Get(ctx context.Context, sku string) (catalog.Product, error)
	List(ctx context.Context, c query.Criteria) ([]catalog.Product, error)
}

package health

import "context"

// BackendPinger checks search backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether the catalog collections have been created.
type CatalogChecker interface {
	Migrated(ctx context.Context) (bool, error)
}

package db

import "context"

// Store is a configured search backend. It hands out scoped sessions and is
// closed once by the composition root.
type Store interface {
	SessionProvider
	Close()
}

// SessionProvider produces short-lived sessions to the search backend.
// The returned release func must be called exactly once; WithSession does it.
type SessionProvider interface {
	Acquire(ctx context.Context) (Session, func(), error)
}

// Session is a scoped handle to the search backend.
//
//nolint:interfacebloat // facade -- consumers use narrow sub-interfaces
type Session interface {
	Pinger
	Searcher
	SchemaManager
	Importer
}

// Pinger checks backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs document searches against a collection.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}

// SchemaManager creates collections.
type SchemaManager interface {
	CreateCollection(ctx context.Context, schema *CollectionSchema) error
	CollectionExists(ctx context.Context, name string) (bool, error)
}

// Importer bulk-loads documents into a collection.
type Importer interface {
	Import(ctx context.Context, collection string, docs []Document) error
}

package db

// Document is a backend document: a tree of key/value maps mirroring the
// reference chain requested through include fields.
type Document = map[string]any

// SearchRequest is the input for a document search.
type SearchRequest struct {
	Collection    string
	Query         string
	QueryBy       string
	IncludeFields string
	Params        map[string]string
	// Exact matches Query against QueryBy literally, without prefix or
	// typo expansion.
	Exact bool
}

// SearchResult is the output of a search, hits in backend order.
type SearchResult struct {
	Found int
	Hits  []Hit
}

// Hit is a single matched document.
type Hit struct {
	Document Document
}

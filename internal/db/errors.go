package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for backend operations.
var (
	ErrSessionClosed     = errors.New("db: session used after release")
	ErrBackendNotReady   = errors.New("db: search backend never came up")
	ErrUnsupportedParam  = errors.New("db: unsupported search parameter")
	ErrCollectionExists  = errors.New("db: collection already exists")
	ErrUnknownCollection = errors.New("db: unknown collection")
)

// Op constants name backend operations for error context.
const (
	OpHealth           = "health"
	OpSearch           = "search"
	OpCreateCollection = "create_collection"
	OpGetCollection    = "get_collection"
	OpImport           = "import"
	OpJSONSet          = "JSON.SET"
	OpJSONGet          = "JSON.GET"
	OpCreateIndex      = "FT.CREATE"
	OpIndexInfo        = "FT.INFO"
)

// Error wraps a backend or transport failure with the operation name.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ImportError reports a document rejected by the backend during import.
type ImportError struct {
	Collection string
	Line       int
	Reason     string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: document %d rejected: %s", e.Collection, e.Line, e.Reason)
}

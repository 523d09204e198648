package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound signals zero hits for an exact sku lookup.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductAmbiguous signals more than one hit for a sku expected to be unique.
	ErrProductAmbiguous = errors.New("product ambiguous")
	// ErrStructuralMapping signals a hit document missing a required nested field.
	ErrStructuralMapping = errors.New("structural mapping error")
	// ErrInvalidProduct signals a field-level validation failure on a catalog entity.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidQuery signals malformed search criteria.
	ErrInvalidQuery = errors.New("invalid query")
)

// MappingError carries the document path that could not be mapped.
type MappingError struct {
	Path   string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStructuralMapping.Error(), e.Path, e.Reason)
}

func (e *MappingError) Unwrap() error { return ErrStructuralMapping }

// NewMappingError creates a structural mapping error for the given document path.
func NewMappingError(path, reason string) error {
	return &MappingError{Path: path, Reason: reason}
}

// AmbiguousError wraps ErrProductAmbiguous with the number of hits returned.
type AmbiguousError struct {
	SKU  string
	Hits int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: sku %q matched %d documents", ErrProductAmbiguous.Error(), e.SKU, e.Hits)
}

func (e *AmbiguousError) Unwrap() error { return ErrProductAmbiguous }

// Package query models search criteria for the product catalog: either an
// exact sku lookup or a free-text search over a single field, optionally
// carrying extra backend parameters.
package query

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/storecatalog/internal/domain"
)

// Search parameter limits and defaults.
const (
	// MatchAll is the query text that returns the unfiltered catalog.
	MatchAll       = "*"
	DefaultField   = "title"
	MaxQueryLength = 512
	MaxPerPage     = 250
)

// Backend parameter names forwarded with free-text criteria.
const (
	ParamFilterBy = "filter_by"
	ParamSortBy   = "sort_by"
	ParamPage     = "page"
	ParamPerPage  = "per_page"
)

var allowedParams = map[string]bool{
	ParamFilterBy: true,
	ParamSortBy:   true,
	ParamPage:     true,
	ParamPerPage:  true,
}

// searchableFields lists the product fields free text may be scoped to.
// Only title is searchable for now.
var searchableFields = map[string]bool{
	DefaultField: true,
}

// Criteria is a validated free-text search.
type Criteria struct {
	text   string
	field  string
	params map[string]string
}

// NewCriteria validates free-text criteria. Empty text means MatchAll and an
// empty field means DefaultField.
func NewCriteria(text, field string, params map[string]string) (Criteria, error) {
	if text == "" {
		text = MatchAll
	}
	if len(text) > MaxQueryLength {
		return Criteria{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if field == "" {
		field = DefaultField
	}
	if !searchableFields[field] {
		return Criteria{}, fmt.Errorf("%w: field %q is not searchable", domain.ErrInvalidQuery, field)
	}

	var cp map[string]string
	if len(params) > 0 {
		cp = make(map[string]string, len(params))
		for k, v := range params {
			if !allowedParams[k] {
				return Criteria{}, fmt.Errorf("%w: unsupported parameter %q", domain.ErrInvalidQuery, k)
			}
			if v == "" {
				continue
			}
			if err := validateParam(k, v); err != nil {
				return Criteria{}, err
			}
			cp[k] = v
		}
	}

	return Criteria{text: text, field: field, params: cp}, nil
}

func validateParam(k, v string) error {
	switch k {
	case ParamPage:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidQuery, k)
		}
	case ParamPerPage:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPerPage {
			return fmt.Errorf("%w: %s must be between 1 and %d", domain.ErrInvalidQuery, k, MaxPerPage)
		}
	}
	return nil
}

// All returns criteria matching the whole catalog.
func All() Criteria {
	return Criteria{text: MatchAll, field: DefaultField}
}

// Text returns the query text.
func (c Criteria) Text() string { return c.text }

// Field returns the field the text is matched against.
func (c Criteria) Field() string { return c.field }

// Param returns a forwarded backend parameter.
func (c Criteria) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// ParamNames returns forwarded parameter names in sorted order.
func (c Criteria) ParamNames() []string {
	names := make([]string, 0, len(c.params))
	for k := range c.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Query is either an exact sku lookup or free-text criteria.
type Query struct {
	sku      string
	criteria Criteria
}

// BySKU builds an exact sku lookup.
func BySKU(sku string) (Query, error) {
	if sku == "" {
		return Query{}, fmt.Errorf("%w: sku is required", domain.ErrInvalidQuery)
	}
	return Query{sku: sku}, nil
}

// ByCriteria builds a free-text query.
func ByCriteria(c Criteria) Query {
	if c.text == "" {
		c = All()
	}
	return Query{criteria: c}
}

// SKU returns the exact sku and whether the query is a sku lookup.
func (q Query) SKU() (string, bool) { return q.sku, q.sku != "" }

// Criteria returns the free-text criteria.
func (q Query) Criteria() Criteria { return q.criteria }

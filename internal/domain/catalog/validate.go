package catalog

import (
	"fmt"
	"math"
	"net/url"

	"github.com/kailas-cloud/storecatalog/internal/domain"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidProduct, fmt.Sprintf(format, args...))
}

func requireText(field, v string) error {
	if v == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return invalid("%s must be positive, got %d", field, id)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be a non-negative number, got %v", field, v)
	}
	return nil
}

// parseImage accepts absolute http(s) URLs only.
func parseImage(field, raw string) (*url.URL, error) {
	if raw == "" {
		return nil, invalid("%s is required", field)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, invalid("%s is not a valid URL: %v", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, invalid("%s must use http or https, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return nil, invalid("%s must have a host", field)
	}
	return u, nil
}

package product

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/domain"
	"github.com/kailas-cloud/storecatalog/internal/domain/catalog"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
	"github.com/kailas-cloud/storecatalog/internal/metrics"
)

// catalogRepository is the contract both Repo and Instrumented satisfy.
type catalogRepository interface {
	Get(ctx context.Context, sku string) (catalog.Product, error)
	List(ctx context.Context, c query.Criteria) ([]catalog.Product, error)
}

// Instrumented wraps a repository with Prometheus metrics and debug logging.
type Instrumented struct {
	inner   catalogRepository
	backend string
	logger  *zap.Logger
}

// NewInstrumented wraps inner. backend labels the metrics ("typesense", "redis").
func NewInstrumented(inner catalogRepository, backend string, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, backend: backend, logger: logger}
}

// Get delegates to the inner repository and records the outcome.
func (r *Instrumented) Get(ctx context.Context, sku string) (catalog.Product, error) {
	start := time.Now()
	p, err := r.inner.Get(ctx, sku)
	r.observe("get", start, err, zap.String("sku", sku))
	return p, err
}

// List delegates to the inner repository and records the outcome.
func (r *Instrumented) List(ctx context.Context, c query.Criteria) ([]catalog.Product, error) {
	start := time.Now()
	products, err := r.inner.List(ctx, c)
	r.observe("list", start, err,
		zap.String("query", c.Text()),
		zap.String("query_by", c.Field()),
		zap.Int("results", len(products)),
	)
	if err == nil {
		metrics.SearchResultsReturned.WithLabelValues(r.backend).Observe(float64(len(products)))
	}
	return products, err
}

func (r *Instrumented) observe(op string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	status := outcome(err)

	metrics.SearchRequestsTotal.WithLabelValues(r.backend, op, status).Inc()
	metrics.SearchRequestDuration.WithLabelValues(r.backend, op).Observe(duration.Seconds())

	fields = append(fields,
		zap.String("backend", r.backend),
		zap.String("status", status),
		zap.Duration("duration", duration),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	r.logger.Debug("Catalog search", fields...)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, domain.ErrProductNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, domain.ErrProductAmbiguous):
		return metrics.StatusAmbiguous
	case errors.Is(err, domain.ErrStructuralMapping), errors.Is(err, domain.ErrInvalidProduct):
		return metrics.StatusMapping
	case errors.Is(err, domain.ErrInvalidQuery):
		return metrics.StatusInvalid
	default:
		return metrics.StatusBackendFail
	}
}

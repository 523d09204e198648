package storecatalog

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	healthuc "github.com/kailas-cloud/storecatalog/internal/usecase/health"
	seeduc "github.com/kailas-cloud/storecatalog/internal/usecase/seed"
)

// HealthStatus represents the aggregated catalog health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component -> "ok"/"error"/"pending"
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// catalogUseCase creates and fills the catalog collections.
type catalogUseCase interface {
	Migrate(ctx context.Context) ([]string, error)
	Seed(ctx context.Context, fsys fs.FS) (seeduc.Stats, error)
}

// Health checks the search backend and the catalog schema.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Migrate creates the missing catalog collections and returns their names.
func (c *Client) Migrate(ctx context.Context) (created []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opMigrate, start, err) }()

	created, err = c.catalogSvc.Migrate(ctx)
	if err != nil {
		return created, fmt.Errorf("migrate: %w", err)
	}
	return created, nil
}

// Seed imports the catalog NDJSON files found in fsys and returns the number
// of documents written per collection.
func (c *Client) Seed(ctx context.Context, fsys fs.FS) (stats map[string]int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSeed, start, err) }()

	s, err := c.catalogSvc.Seed(ctx, fsys)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return s, nil
}

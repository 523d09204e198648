package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckPending indicates the catalog schema has not been migrated yet.
	CheckPending CheckResult = "pending"
)

// Component names reported in Report.Checks.
const (
	ComponentSearchBackend = "search_backend"
	ComponentCatalog       = "catalog"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	backend BackendPinger
	catalog CatalogChecker
}

// New creates a Service. catalog can be nil.
func New(backend BackendPinger, catalog CatalogChecker) *Service {
	return &Service{backend: backend, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.backend.Ping(ctx); err != nil {
		checks[ComponentSearchBackend] = CheckError
	} else {
		checks[ComponentSearchBackend] = CheckOK
	}

	// Schema state is meaningless while the backend is down.
	if s.catalog != nil && checks[ComponentSearchBackend] == CheckOK {
		ok, err := s.catalog.Migrated(ctx)
		switch {
		case err != nil:
			checks[ComponentCatalog] = CheckError
		case !ok:
			checks[ComponentCatalog] = CheckPending
		default:
			checks[ComponentCatalog] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

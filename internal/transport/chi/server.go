package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
	healthuc "github.com/kailas-cloud/storecatalog/internal/usecase/health"
	searchuc "github.com/kailas-cloud/storecatalog/internal/usecase/search"
	"github.com/kailas-cloud/storecatalog/internal/version"
)

// ListProductsParams holds the query string of GET /products and GET /catalog.
type ListProductsParams struct {
	Query    *string
	QueryBy  *string
	FilterBy *string
	SortBy   *string
	Page     *int
	PerPage  *int
}

// Server serves the catalog HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = defaultErrorHandlers()
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/products", s.ListProducts)
	r.Get("/products/{sku}", s.GetProduct)
	r.Get("/catalog", s.Catalog)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/version", s.Version)
}

// ListProducts handles GET /products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	criteria, err := criteriaFromParams(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.List(r.Context(), criteria)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productListToResponse(res.Products()))
}

// GetProduct handles GET /products/{sku}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	var sku string
	err := runtime.BindStyledParameterWithOptions("simple", "sku", chi.URLParam(r, "sku"), &sku,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid format for parameter sku: "+err.Error())
		return
	}

	res, err := s.search.Get(r.Context(), sku)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	p, ok := res.Product()
	if !ok {
		s.handleDomainError(w, r, errNoSingleResult)
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: version.Version,
		Commit:  version.Commit,
		Date:    version.Date,
	})
}

func bindListParams(r *http.Request) (ListProductsParams, error) {
	var params ListProductsParams
	q := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"query", &params.Query},
		{"query_by", &params.QueryBy},
		{"filter_by", &params.FilterBy},
		{"sort_by", &params.SortBy},
		{"page", &params.Page},
		{"per_page", &params.PerPage},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return ListProductsParams{}, invalidParamError{name: b.name, err: err}
		}
	}
	return params, nil
}

func criteriaFromParams(p ListProductsParams) (query.Criteria, error) {
	raw := make(map[string]string)
	if p.FilterBy != nil {
		raw[query.ParamFilterBy] = *p.FilterBy
	}
	if p.SortBy != nil {
		raw[query.ParamSortBy] = *p.SortBy
	}
	if p.Page != nil {
		raw[query.ParamPage] = strconv.Itoa(*p.Page)
	}
	if p.PerPage != nil {
		raw[query.ParamPerPage] = strconv.Itoa(*p.PerPage)
	}

	//nolint:wrapcheck // ErrInvalidQuery is mapped by the error handlers
	return query.NewCriteria(deref(p.Query), deref(p.QueryBy), raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type invalidParamError struct {
	name string
	err  error
}

func (e invalidParamError) Error() string {
	return "Invalid format for parameter " + e.name + ": " + e.err.Error()
}

func (e invalidParamError) Unwrap() error { return e.err }

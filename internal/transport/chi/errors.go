package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain"
	logpkg "github.com/kailas-cloud/storecatalog/internal/logger"
)

// ErrorCode is the machine-readable code of an ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeInvalidQuery       ErrorCode = "invalid_query"
	CodeUnsupportedParam   ErrorCode = "unsupported_parameter"
	CodeProductNotFound    ErrorCode = "product_not_found"
	CodeProductAmbiguous   ErrorCode = "product_ambiguous"
	CodeCatalogMapping     ErrorCode = "catalog_mapping_error"
	CodeSearchBackendError ErrorCode = "search_backend_error"
	CodeInternalError      ErrorCode = "internal_error"
)

var errNoSingleResult = errors.New("sku lookup returned no single product")

// errorHandler classifies an error. ok is false when the error is not its kind.
type errorHandler func(err error) (status int, code ErrorCode, ok bool)

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(db.ErrUnsupportedParam, http.StatusBadRequest, CodeUnsupportedParam),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
		sentinelHandler(domain.ErrProductAmbiguous, http.StatusConflict, CodeProductAmbiguous),
		sentinelHandler(domain.ErrStructuralMapping, http.StatusBadGateway, CodeCatalogMapping),
		sentinelHandler(domain.ErrInvalidProduct, http.StatusBadGateway, CodeCatalogMapping),
		backendErrorHandler,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrProductAmbiguous,
		domain.ErrStructuralMapping,
		domain.ErrInvalidProduct,
		db.ErrUnsupportedParam,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	// Criteria validation messages describe the caller's own input.
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return "search backend unavailable"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(err error) (int, ErrorCode, bool) {
		if !errors.Is(err, sentinel) {
			return 0, "", false
		}
		return status, code, true
	}
}

// backendErrorHandler maps search backend failures to 502.
func backendErrorHandler(err error) (int, ErrorCode, bool) {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		return 0, "", false
	}
	return http.StatusBadGateway, CodeSearchBackendError, true
}

// classify returns the HTTP status and code for err, falling back to 500.
func (s *Server) classify(err error) (int, ErrorCode) {
	for _, h := range s.errorHandlers {
		if status, code, ok := h(err); ok {
			return status, code
		}
	}
	return http.StatusInternalServerError, CodeInternalError
}

// requestLogger returns the per-request logger set by WideEvent, or the server logger.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := s.classify(err)
	if status == http.StatusInternalServerError {
		s.requestLogger(r).Error("Internal error", zap.Error(err))
		writeError(w, status, code, "internal error")
		return
	}
	s.requestLogger(r).Warn("Domain error", zap.Error(err))
	writeError(w, status, code, safeDomainMessage(err))
}

package chi

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
)

//go:embed templates/catalog_list.html
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog_list.html"))

type catalogPage struct {
	Query    string
	Products []ProductResponse
	Error    string
}

// Catalog handles GET /catalog: an HTML product list searched by title.
func (s *Server) Catalog(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("query")
	page := catalogPage{Query: text}
	status := http.StatusOK

	products, err := s.catalogProducts(r, text)
	if err != nil {
		s.requestLogger(r).Warn("Catalog search failed", zap.Error(err))
		status, _ = s.classify(err)
		page.Error = safeDomainMessage(err)
	}
	page.Products = products

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := catalogTemplate.Execute(w, page); err != nil {
		s.requestLogger(r).Error("Render catalog", zap.Error(err))
	}
}

func (s *Server) catalogProducts(r *http.Request, text string) ([]ProductResponse, error) {
	criteria, err := query.NewCriteria(text, query.DefaultField, nil)
	if err != nil {
		return nil, err //nolint:wrapcheck // mapped by classify
	}
	res, err := s.search.List(r.Context(), criteria)
	if err != nil {
		return nil, err //nolint:wrapcheck // mapped by classify
	}
	return productListToResponse(res.Products()).Products, nil
}

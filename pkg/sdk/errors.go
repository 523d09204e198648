package storecatalog

import (
	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain"
)

// Sentinel errors re-exported from the domain and backend layers.
// Use errors.Is() to check.
var (
	ErrProductNotFound   = domain.ErrProductNotFound
	ErrProductAmbiguous  = domain.ErrProductAmbiguous
	ErrStructuralMapping = domain.ErrStructuralMapping
	ErrInvalidProduct    = domain.ErrInvalidProduct
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrBackendNotReady   = db.ErrBackendNotReady
	ErrUnsupportedParam  = db.ErrUnsupportedParam
)

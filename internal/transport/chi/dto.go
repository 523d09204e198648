package chi

import "github.com/kailas-cloud/storecatalog/internal/domain/catalog"

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// ManufacturerResponse is a manufacturer as rendered by the API.
type ManufacturerResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image_url,omitempty"`
}

// CategoryResponse is a category as rendered by the API. Parent is set for subcategories only.
type CategoryResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	IsSubcategory bool              `json:"is_subcategory"`
	Parent        *CategoryResponse `json:"parent,omitempty"`
}

// ModelResponse is a product model as rendered by the API.
type ModelResponse struct {
	SKU          string               `json:"sku"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Image        string               `json:"image_url"`
	MinPrice     float64              `json:"min_price"`
	Category     CategoryResponse     `json:"category"`
	Manufacturer ManufacturerResponse `json:"manufacturer"`
}

// ProductResponse is a product as rendered by the API.
type ProductResponse struct {
	SKU          string        `json:"sku"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Image        string        `json:"image_url"`
	Price        float64       `json:"price"`
	Stock        bool          `json:"stock"`
	NumPurchases int64         `json:"num_purchases"`
	Model        ModelResponse `json:"model"`
}

// ProductListResponse is the body of GET /products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

func productListToResponse(products []catalog.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, productToResponse(p))
	}
	return ProductListResponse{Products: items, Count: len(items)}
}

func productToResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		SKU:          p.SKU(),
		Title:        p.Title(),
		Description:  p.Description(),
		Image:        p.Image(),
		Price:        p.Price(),
		Stock:        p.InStock(),
		NumPurchases: p.NumPurchases(),
		Model:        modelToResponse(p.Model()),
	}
}

func modelToResponse(m catalog.Model) ModelResponse {
	return ModelResponse{
		SKU:          m.SKU(),
		Title:        m.Title(),
		Description:  m.Description(),
		Image:        m.Image(),
		MinPrice:     m.MinPrice(),
		Category:     categoryToResponse(m.Category()),
		Manufacturer: manufacturerToResponse(m.Manufacturer()),
	}
}

func categoryToResponse(c catalog.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:            c.ID(),
		Title:         c.Title(),
		IsSubcategory: c.IsSubcategory(),
	}
	if parent, ok := c.Parent(); ok {
		pr := categoryToResponse(parent)
		resp.Parent = &pr
	}
	return resp
}

func manufacturerToResponse(m catalog.Manufacturer) ManufacturerResponse {
	return ManufacturerResponse{
		ID:    m.ID(),
		Title: m.Title(),
		Image: m.Image(),
	}
}

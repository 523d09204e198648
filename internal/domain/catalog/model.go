package catalog

import "net/url"

// Model is a product model: the shared description of a family of products.
type Model struct {
	sku          string
	title        string
	description  string
	image        *url.URL
	minPrice     float64
	category     Category
	manufacturer Manufacturer
}

// ModelParams holds the raw fields of a product model.
type ModelParams struct {
	SKU          string
	Title        string
	Description  string
	Image        string
	MinPrice     float64
	Category     Category
	Manufacturer Manufacturer
}

// NewModel validates and creates a Model. The category must be a subcategory.
func NewModel(p ModelParams) (Model, error) {
	if err := requireText("model sku", p.SKU); err != nil {
		return Model{}, err
	}
	if err := requireText("model title", p.Title); err != nil {
		return Model{}, err
	}
	if err := requireText("model description", p.Description); err != nil {
		return Model{}, err
	}
	u, err := parseImage("model image", p.Image)
	if err != nil {
		return Model{}, err
	}
	if err := requireNonNegative("model min price", p.MinPrice); err != nil {
		return Model{}, err
	}
	if p.Category.ID() == 0 {
		return Model{}, invalid("model %q requires a category", p.SKU)
	}
	if !p.Category.IsSubcategory() {
		return Model{}, invalid("model %q category %d is not a subcategory", p.SKU, p.Category.ID())
	}
	if p.Manufacturer.ID() == 0 {
		return Model{}, invalid("model %q requires a manufacturer", p.SKU)
	}

	return Model{
		sku:          p.SKU,
		title:        p.Title,
		description:  p.Description,
		image:        u,
		minPrice:     p.MinPrice,
		category:     p.Category,
		manufacturer: p.Manufacturer,
	}, nil
}

// SKU returns the model stock-keeping unit.
func (m Model) SKU() string { return m.sku }

// Title returns the model title.
func (m Model) Title() string { return m.title }

// Description returns the model description.
func (m Model) Description() string { return m.description }

// Image returns the model image URL as a string.
func (m Model) Image() string {
	if m.image == nil {
		return ""
	}
	return m.image.String()
}

// MinPrice returns the lowest price across the model's products, in euros.
func (m Model) MinPrice() float64 { return m.minPrice }

// Category returns the model subcategory.
func (m Model) Category() Category { return m.category }

// Manufacturer returns the model manufacturer.
func (m Model) Manufacturer() Manufacturer { return m.manufacturer }

package catalog

import "net/url"

// Manufacturer is a product manufacturer (immutable value object).
type Manufacturer struct {
	id    int64
	title string
	image *url.URL
}

// NewManufacturer validates and creates a Manufacturer.
func NewManufacturer(id int64, title, image string) (Manufacturer, error) {
	if err := requireID("manufacturer id", id); err != nil {
		return Manufacturer{}, err
	}
	if err := requireText("manufacturer title", title); err != nil {
		return Manufacturer{}, err
	}
	u, err := parseImage("manufacturer image", image)
	if err != nil {
		return Manufacturer{}, err
	}
	return Manufacturer{id: id, title: title, image: u}, nil
}

// ID returns the manufacturer identifier.
func (m Manufacturer) ID() int64 { return m.id }

// Title returns the manufacturer title.
func (m Manufacturer) Title() string { return m.title }

// Image returns the manufacturer image URL as a string.
func (m Manufacturer) Image() string {
	if m.image == nil {
		return ""
	}
	return m.image.String()
}

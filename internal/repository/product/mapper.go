package product

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain"
	"github.com/kailas-cloud/storecatalog/internal/domain/catalog"
)

// Nested keys under which the backend embeds referenced documents.
const (
	keyModel        = db.CollectionModels
	keyCategory     = db.CollectionCategories
	keyManufacturer = db.CollectionManufacturers
)

// node is a hit sub-document together with its path for error reporting.
type node struct {
	path string
	doc  map[string]any
}

func (n node) at(key string) string { return n.path + "." + key }

func (n node) value(key string) (any, error) {
	v, ok := n.doc[key]
	if !ok || v == nil {
		return nil, domain.NewMappingError(n.at(key), "missing")
	}
	return v, nil
}

func (n node) str(key string) (string, error) {
	v, err := n.value(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.NewMappingError(n.at(key), fmt.Sprintf("expected string, got %T", v))
	}
	return s, nil
}

func (n node) float(key string) (float64, error) {
	v, err := n.value(key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, domain.NewMappingError(n.at(key), err.Error())
		}
		return f, nil
	default:
		return 0, domain.NewMappingError(n.at(key), fmt.Sprintf("expected number, got %T", v))
	}
}

func (n node) boolean(key string) (bool, error) {
	v, err := n.value(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, domain.NewMappingError(n.at(key), fmt.Sprintf("expected bool, got %T", v))
	}
	return b, nil
}

// id reads an integer identifier stored either as a JSON number or as a
// numeric string.
func (n node) id(key string) (int64, error) {
	v, err := n.value(key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case string:
		id, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, domain.NewMappingError(n.at(key), fmt.Sprintf("not an integer id: %q", x))
		}
		return id, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, domain.NewMappingError(n.at(key), fmt.Sprintf("not an integer id: %v", x))
		}
		return int64(x), nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case json.Number:
		id, err := x.Int64()
		if err != nil {
			return 0, domain.NewMappingError(n.at(key), err.Error())
		}
		return id, nil
	default:
		return 0, domain.NewMappingError(n.at(key), fmt.Sprintf("expected id, got %T", v))
	}
}

func (n node) child(key string) (node, error) {
	c, ok, err := n.optChild(key)
	if err != nil {
		return node{}, err
	}
	if !ok {
		return node{}, domain.NewMappingError(n.at(key), "missing")
	}
	return c, nil
}

func (n node) optChild(key string) (node, bool, error) {
	v, ok := n.doc[key]
	if !ok || v == nil {
		return node{}, false, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return node{}, false, domain.NewMappingError(n.at(key), fmt.Sprintf("expected object, got %T", v))
	}
	return node{path: n.at(key), doc: m}, true, nil
}

// entityError keeps field validation failures distinguishable while
// attaching the document path.
func entityError(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// mapProduct rebuilds a Product from a search hit, bottom-up: parent
// category, category, manufacturer, model, product. Any failure aborts the
// whole mapping.
func mapProduct(doc db.Document) (catalog.Product, error) {
	root := node{path: db.CollectionProducts, doc: doc}

	modelNode, err := root.child(keyModel)
	if err != nil {
		return catalog.Product{}, err
	}
	model, err := mapModel(modelNode)
	if err != nil {
		return catalog.Product{}, err
	}

	sku, err := root.str("sku")
	if err != nil {
		return catalog.Product{}, err
	}
	title, err := root.str("title")
	if err != nil {
		return catalog.Product{}, err
	}
	description, err := root.str("description")
	if err != nil {
		return catalog.Product{}, err
	}
	image, err := root.str("image_url")
	if err != nil {
		return catalog.Product{}, err
	}
	price, err := root.float("price")
	if err != nil {
		return catalog.Product{}, err
	}
	stock, err := root.boolean("stock")
	if err != nil {
		return catalog.Product{}, err
	}

	// NumPurchases stays zero: purchase counts are not part of search results.
	p, err := catalog.NewProduct(catalog.ProductParams{
		SKU:         sku,
		Title:       title,
		Description: description,
		Image:       image,
		Price:       price,
		Model:       model,
		Stock:       stock,
	})
	if err != nil {
		return catalog.Product{}, entityError(root.path, err)
	}
	return p, nil
}

func mapModel(n node) (catalog.Model, error) {
	categoryNode, err := n.child(keyCategory)
	if err != nil {
		return catalog.Model{}, err
	}
	category, err := mapCategory(categoryNode)
	if err != nil {
		return catalog.Model{}, err
	}

	manufacturerNode, err := n.child(keyManufacturer)
	if err != nil {
		return catalog.Model{}, err
	}
	manufacturer, err := mapManufacturer(manufacturerNode)
	if err != nil {
		return catalog.Model{}, err
	}

	sku, err := n.str("sku")
	if err != nil {
		return catalog.Model{}, err
	}
	title, err := n.str("title")
	if err != nil {
		return catalog.Model{}, err
	}
	description, err := n.str("description")
	if err != nil {
		return catalog.Model{}, err
	}
	image, err := n.str("image_url")
	if err != nil {
		return catalog.Model{}, err
	}
	minPrice, err := n.float("min_price")
	if err != nil {
		return catalog.Model{}, err
	}

	m, err := catalog.NewModel(catalog.ModelParams{
		SKU:          sku,
		Title:        title,
		Description:  description,
		Image:        image,
		MinPrice:     minPrice,
		Category:     category,
		Manufacturer: manufacturer,
	})
	if err != nil {
		return catalog.Model{}, entityError(n.path, err)
	}
	return m, nil
}

// mapCategory maps a category and its optional parent. The subcategory
// flag must agree with the presence of the embedded parent.
func mapCategory(n node) (catalog.Category, error) {
	id, err := n.id("id")
	if err != nil {
		return catalog.Category{}, err
	}
	title, err := n.str("title")
	if err != nil {
		return catalog.Category{}, err
	}
	isSub, err := n.boolean("subcategory")
	if err != nil {
		return catalog.Category{}, err
	}

	parentNode, hasParent, err := n.optChild(keyCategory)
	if err != nil {
		return catalog.Category{}, err
	}
	if isSub != hasParent {
		return catalog.Category{}, domain.NewMappingError(
			n.at(keyCategory),
			fmt.Sprintf("subcategory=%t but parent present=%t", isSub, hasParent),
		)
	}

	if !hasParent {
		c, err := catalog.NewCategory(id, title)
		if err != nil {
			return catalog.Category{}, entityError(n.path, err)
		}
		return c, nil
	}

	parent, err := mapCategory(parentNode)
	if err != nil {
		return catalog.Category{}, err
	}
	c, err := catalog.NewSubcategory(id, title, parent)
	if err != nil {
		return catalog.Category{}, entityError(n.path, err)
	}
	return c, nil
}

func mapManufacturer(n node) (catalog.Manufacturer, error) {
	id, err := n.id("id")
	if err != nil {
		return catalog.Manufacturer{}, err
	}
	title, err := n.str("title")
	if err != nil {
		return catalog.Manufacturer{}, err
	}
	image, err := n.str("image_url")
	if err != nil {
		return catalog.Manufacturer{}, err
	}
	m, err := catalog.NewManufacturer(id, title, image)
	if err != nil {
		return catalog.Manufacturer{}, entityError(n.path, err)
	}
	return m, nil
}

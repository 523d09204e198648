package db

import "strings"

// Catalog collection names.
const (
	CollectionManufacturers = "product_manufacturers"
	CollectionCategories    = "product_categories"
	CollectionModels        = "product_models"
	CollectionProducts      = "products"
)

// FieldType is a backend field type.
type FieldType string

// Field types used by the catalog schema.
const (
	FieldString FieldType = "string"
	FieldBool   FieldType = "bool"
	FieldFloat  FieldType = "float"
	FieldInt32  FieldType = "int32"
)

// Field describes one collection field. Reference links the field to
// another collection's id as "<collection>.id".
type Field struct {
	Name      string
	Type      FieldType
	Optional  bool
	Facet     bool
	Reference string
}

// CollectionSchema describes one collection.
type CollectionSchema struct {
	Name   string
	Fields []Field
}

// ReferencedCollection returns the collection a reference field points to.
func (f Field) ReferencedCollection() string {
	name, _, _ := strings.Cut(f.Reference, ".")
	return name
}

// CatalogSchema returns the four catalog collections in dependency order.
func CatalogSchema() []CollectionSchema {
	return []CollectionSchema{
		{
			Name: CollectionManufacturers,
			Fields: []Field{
				{Name: "title", Type: FieldString},
				{Name: "image_url", Type: FieldString, Optional: true},
			},
		},
		{
			Name: CollectionCategories,
			Fields: []Field{
				{Name: "title", Type: FieldString},
				{Name: "subcategory", Type: FieldBool},
				{
					Name: "product_category_id", Type: FieldString,
					Optional: true, Facet: true, Reference: CollectionCategories + ".id",
				},
			},
		},
		{
			Name: CollectionModels,
			Fields: []Field{
				{Name: "sku", Type: FieldString},
				{Name: "title", Type: FieldString},
				{Name: "description", Type: FieldString},
				{Name: "image_url", Type: FieldString},
				{Name: "product_category_id", Type: FieldString, Facet: true, Reference: CollectionCategories + ".id"},
				{
					Name: "product_manufacturer_id", Type: FieldString,
					Facet: true, Reference: CollectionManufacturers + ".id",
				},
				{Name: "min_price", Type: FieldFloat},
			},
		},
		{
			Name: CollectionProducts,
			Fields: []Field{
				{Name: "sku", Type: FieldString},
				{Name: "title", Type: FieldString},
				{Name: "description", Type: FieldString},
				{Name: "image_url", Type: FieldString},
				{Name: "price", Type: FieldFloat},
				{Name: "product_model_id", Type: FieldString, Facet: true, Reference: CollectionModels + ".id"},
				{Name: "stock", Type: FieldBool},
				{Name: "num_purchases", Type: FieldInt32},
			},
		},
	}
}

// LookupSchema returns the catalog schema of a collection.
func LookupSchema(name string) (CollectionSchema, bool) {
	for _, s := range CatalogSchema() {
		if s.Name == name {
			return s, true
		}
	}
	return CollectionSchema{}, false
}

package catalog

// Category is a product category. A subcategory always carries its parent;
// top-level categories never do. The tree is at most two levels deep.
type Category struct {
	id     int64
	title  string
	parent *Category
}

// NewCategory validates and creates a top-level category.
func NewCategory(id int64, title string) (Category, error) {
	if err := requireID("category id", id); err != nil {
		return Category{}, err
	}
	if err := requireText("category title", title); err != nil {
		return Category{}, err
	}
	return Category{id: id, title: title}, nil
}

// NewSubcategory validates and creates a subcategory attached to parent.
func NewSubcategory(id int64, title string, parent Category) (Category, error) {
	c, err := NewCategory(id, title)
	if err != nil {
		return Category{}, err
	}
	if parent.id == 0 {
		return Category{}, invalid("subcategory %d requires a parent", id)
	}
	if parent.IsSubcategory() {
		return Category{}, invalid("parent category %d of %d is itself a subcategory", parent.id, id)
	}
	if parent.id == id {
		return Category{}, invalid("category %d cannot be its own parent", id)
	}
	p := parent
	c.parent = &p
	return c, nil
}

// ID returns the category identifier.
func (c Category) ID() int64 { return c.id }

// Title returns the category title.
func (c Category) Title() string { return c.title }

// IsSubcategory reports whether the category has a parent.
func (c Category) IsSubcategory() bool { return c.parent != nil }

// Parent returns the parent category, if any.
func (c Category) Parent() (Category, bool) {
	if c.parent == nil {
		return Category{}, false
	}
	return *c.parent, true
}

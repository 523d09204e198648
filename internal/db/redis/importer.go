package redis

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// Import writes documents as JSON keys. Referenced collections are kept in
// memory as well; products are joined with their model, category chain and
// manufacturer so each stored product has the same shape as a Typesense hit.
func (s *session) Import(ctx context.Context, collection string, docs []db.Document) error {
	if err := s.Check(); err != nil {
		return err
	}
	if _, ok := db.LookupSchema(collection); !ok {
		return fmt.Errorf("%w: %s", db.ErrUnknownCollection, collection)
	}

	keys := make([]string, 0, len(docs))
	out := make([]db.Document, 0, len(docs))
	for i, doc := range docs {
		id, ok := documentID(doc)
		if !ok {
			return &db.ImportError{Collection: collection, Line: i + 1, Reason: "document has no id"}
		}

		stored := doc
		if collection == db.CollectionProducts {
			joined, err := s.store.denormalise(ctx, doc)
			if err != nil {
				return &db.ImportError{Collection: collection, Line: i + 1, Reason: err.Error()}
			}
			stored = joined
		}
		keys = append(keys, documentKey(collection, id))
		out = append(out, stored)
	}

	if err := s.store.jsonSetMulti(ctx, keys, out); err != nil {
		return err
	}
	if collection != db.CollectionProducts {
		s.store.remember(collection, out)
	}
	return nil
}

func (s *Store) remember(collection string, docs []db.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.refs[collection]
	if !ok {
		byID = make(map[string]db.Document, len(docs))
		s.refs[collection] = byID
	}
	for _, d := range docs {
		id, _ := documentID(d)
		byID[id] = d
	}
}

// lookup resolves a referenced document from memory, falling back to the
// stored JSON key for collections imported by an earlier run.
func (s *Store) lookup(ctx context.Context, collection, id string) (db.Document, error) {
	s.mu.RLock()
	doc, ok := s.refs[collection][id]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	doc, ok, err := s.jsonGet(ctx, documentKey(collection, id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %s not found", collection, id)
	}
	s.remember(collection, []db.Document{doc})
	return doc, nil
}

// denormalise embeds the reference chain of a product:
// products -> product_models -> {product_categories -> product_categories?, product_manufacturers}.
func (s *Store) denormalise(ctx context.Context, product db.Document) (db.Document, error) {
	model, err := s.resolve(ctx, product, "product_model_id", db.CollectionModels)
	if err != nil {
		return nil, err
	}

	category, err := s.resolve(ctx, model, "product_category_id", db.CollectionCategories)
	if err != nil {
		return nil, err
	}
	if ref, ok := referenceID(category, "product_category_id"); ok {
		parent, err := s.lookup(ctx, db.CollectionCategories, ref)
		if err != nil {
			return nil, err
		}
		category[db.CollectionCategories] = maps.Clone(parent)
	}

	manufacturer, err := s.resolve(ctx, model, "product_manufacturer_id", db.CollectionManufacturers)
	if err != nil {
		return nil, err
	}

	model[db.CollectionCategories] = category
	model[db.CollectionManufacturers] = manufacturer

	out := maps.Clone(product)
	out[db.CollectionModels] = model
	return out, nil
}

// resolve follows a required reference field and returns a copy of the target.
func (s *Store) resolve(ctx context.Context, doc db.Document, field, collection string) (db.Document, error) {
	ref, ok := referenceID(doc, field)
	if !ok {
		return nil, fmt.Errorf("missing reference %s", field)
	}
	target, err := s.lookup(ctx, collection, ref)
	if err != nil {
		return nil, err
	}
	return maps.Clone(target), nil
}

func referenceID(doc db.Document, field string) (string, bool) {
	return documentID(db.Document{"id": doc[field]})
}

// documentID reads an id stored as a string or a JSON number.
func documentID(doc db.Document) (string, bool) {
	switch v := doc["id"].(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

package redis

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// indexedFields maps the product fields a catalog query can target to
// their FT field types.
var indexedFields = []struct {
	name string
	kind string
}{
	{"sku", "TAG"},
	{"title", "TEXT"},
}

// CreateCollection registers a collection. Only products get an FT index;
// referenced collections are plain JSON keys joined at import time.
func (s *session) CreateCollection(ctx context.Context, schema *db.CollectionSchema) error {
	if err := s.Check(); err != nil {
		return err
	}
	if _, ok := db.LookupSchema(schema.Name); !ok {
		return fmt.Errorf("%w: %s", db.ErrUnknownCollection, schema.Name)
	}

	if schema.Name == db.CollectionProducts {
		cmd := s.store.b().Arbitrary("FT.CREATE").Args(buildCreateArgs()...).Build()
		if err := s.store.do(ctx, cmd).Error(); err != nil {
			if isRedisErr(err, "index already exists") {
				return db.ErrCollectionExists
			}
			return &db.Error{Op: db.OpCreateIndex, Err: err}
		}
		return nil
	}

	created, err := s.store.setMarker(ctx, schema.Name)
	if err != nil {
		return err
	}
	if !created {
		return db.ErrCollectionExists
	}
	return nil
}

// CollectionExists probes the products index via FT.INFO and other
// collections via their marker key.
func (s *session) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := s.Check(); err != nil {
		return false, err
	}
	if name != db.CollectionProducts {
		return s.store.hasMarker(ctx, name)
	}

	cmd := s.store.b().Arbitrary("FT.INFO").Args(productIndex).Build()
	if err := s.store.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func buildCreateArgs() []string {
	prefix := documentKey(db.CollectionProducts, "")
	args := []string{productIndex, "ON", "JSON", "PREFIX", "1", prefix, "SCHEMA"}
	for _, f := range indexedFields {
		args = append(args, "$."+f.name, "AS", f.name, f.kind)
	}
	return args
}

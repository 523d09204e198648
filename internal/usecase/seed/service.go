// Package seed creates the catalog collections and bulk-loads them from
// newline-delimited JSON files.
package seed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// maxLineSize bounds a single NDJSON record.
const maxLineSize = 1 << 20

// Source is one seed file and the collection it loads into.
type Source struct {
	File       string
	Collection string
}

// Sources lists seed files in dependency order: every reference points to
// a collection loaded earlier.
var Sources = []Source{
	{File: "product_manufacturers.jsonl", Collection: db.CollectionManufacturers},
	{File: "product_categories.jsonl", Collection: db.CollectionCategories},
	{File: "product_subcategories.jsonl", Collection: db.CollectionCategories},
	{File: "product_models.jsonl", Collection: db.CollectionModels},
	{File: "products.jsonl", Collection: db.CollectionProducts},
}

// Stats counts imported documents per collection.
type Stats map[string]int

// Service migrates and seeds the catalog.
type Service struct {
	sessions db.SessionProvider
	logger   *zap.Logger
}

// New creates a seed service.
func New(sessions db.SessionProvider, logger *zap.Logger) *Service {
	return &Service{sessions: sessions, logger: logger}
}

// Migrate creates the catalog collections that do not exist yet and returns
// the names it created.
func (s *Service) Migrate(ctx context.Context) ([]string, error) {
	return db.WithSession(ctx, s.sessions, func(sess db.Session) ([]string, error) {
		var created []string
		for _, schema := range db.CatalogSchema() {
			exists, err := sess.CollectionExists(ctx, schema.Name)
			if err != nil {
				return created, fmt.Errorf("check %s: %w", schema.Name, err)
			}
			if exists {
				s.logger.Debug("Collection already exists", zap.String("collection", schema.Name))
				continue
			}

			err = sess.CreateCollection(ctx, &schema)
			if errors.Is(err, db.ErrCollectionExists) {
				continue
			}
			if err != nil {
				return created, fmt.Errorf("create %s: %w", schema.Name, err)
			}
			s.logger.Info("Collection created", zap.String("collection", schema.Name))
			created = append(created, schema.Name)
		}
		return created, nil
	})
}

// Migrated reports whether every catalog collection exists.
func (s *Service) Migrated(ctx context.Context) (bool, error) {
	return db.WithSession(ctx, s.sessions, func(sess db.Session) (bool, error) {
		for _, schema := range db.CatalogSchema() {
			ok, err := sess.CollectionExists(ctx, schema.Name)
			if err != nil {
				return false, fmt.Errorf("check %s: %w", schema.Name, err)
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	})
}

// Seed imports every source file from fsys in dependency order. All files
// are parsed before anything is written; a missing file or malformed
// record aborts the seed.
func (s *Service) Seed(ctx context.Context, fsys fs.FS) (Stats, error) {
	batches := make([]batch, 0, len(Sources))
	for _, src := range Sources {
		b, err := readSource(fsys, src)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return db.WithSession(ctx, s.sessions, func(sess db.Session) (Stats, error) {
		stats := make(Stats, len(batches))
		for _, b := range batches {
			if err := sess.Import(ctx, b.src.Collection, b.docs); err != nil {
				return stats, b.importError(err)
			}
			stats[b.src.Collection] += len(b.docs)
			s.logger.Info("Seed file imported",
				zap.String("file", b.src.File),
				zap.String("collection", b.src.Collection),
				zap.Int("documents", len(b.docs)),
			)
		}
		return stats, nil
	})
}

// batch is a parsed seed file. lines maps each document to its line in the file.
type batch struct {
	src   Source
	docs  []db.Document
	lines []int
}

// importError rewrites a backend rejection to point at the file line.
func (b batch) importError(err error) error {
	var ie *db.ImportError
	if errors.As(err, &ie) && ie.Line >= 1 && ie.Line <= len(b.lines) {
		return fmt.Errorf("%s: %w", b.src.File, &db.ImportError{
			Collection: ie.Collection,
			Line:       b.lines[ie.Line-1],
			Reason:     ie.Reason,
		})
	}
	return fmt.Errorf("%s: %w", b.src.File, err)
}

func readSource(fsys fs.FS, src Source) (batch, error) {
	f, err := fsys.Open(src.File)
	if err != nil {
		return batch{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	b := batch{src: src}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var doc db.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return batch{}, fmt.Errorf("%s: %w", src.File, &db.ImportError{
				Collection: src.Collection, Line: line, Reason: err.Error(),
			})
		}
		b.docs = append(b.docs, doc)
		b.lines = append(b.lines, line)
	}
	if err := sc.Err(); err != nil {
		return batch{}, fmt.Errorf("read %s: %w", src.File, err)
	}
	return b, nil
}

package typesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	ts "github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
)

const importBatchSize = 100

// session is one scoped Typesense client.
type session struct {
	db.Guard
	client  *ts.Client
	timeout time.Duration
}

// Ping reports an error unless the node answers healthy.
func (s *session) Ping(ctx context.Context) error {
	if err := s.Check(); err != nil {
		return err
	}
	ok, err := s.client.Health(ctx, s.timeout)
	if err != nil {
		return &db.Error{Op: db.OpHealth, Err: err}
	}
	if !ok {
		return &db.Error{Op: db.OpHealth, Err: errors.New("node reported unhealthy")}
	}
	return nil
}

// Search runs a documents search on req.Collection.
func (s *session) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	params, err := buildSearchParams(req)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Collection(req.Collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return convertSearchResult(res), nil
}

// CreateCollection creates a collection from a catalog schema.
func (s *session) CreateCollection(ctx context.Context, schema *db.CollectionSchema) error {
	if err := s.Check(); err != nil {
		return err
	}
	_, err := s.client.Collections().Create(ctx, collectionSchema(schema))
	if err != nil {
		var he *ts.HTTPError
		if errors.As(err, &he) && he.Status == http.StatusConflict {
			return db.ErrCollectionExists
		}
		return &db.Error{Op: db.OpCreateCollection, Err: err}
	}
	return nil
}

// CollectionExists probes a collection; 404 means absent.
func (s *session) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := s.Check(); err != nil {
		return false, err
	}
	_, err := s.client.Collection(name).Retrieve(ctx)
	if err != nil {
		var he *ts.HTTPError
		if errors.As(err, &he) && he.Status == http.StatusNotFound {
			return false, nil
		}
		return false, &db.Error{Op: db.OpGetCollection, Err: err}
	}
	return true, nil
}

// Import bulk-creates documents. Any rejected document fails the import.
func (s *session) Import(ctx context.Context, collection string, docs []db.Document) error {
	if err := s.Check(); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	items := make([]interface{}, len(docs))
	for i, d := range docs {
		items[i] = d
	}

	resp, err := s.client.Collection(collection).Documents().Import(ctx, items, &api.ImportDocumentsParams{
		BatchSize: pointer.Int(importBatchSize),
	})
	if err != nil {
		return &db.Error{Op: db.OpImport, Err: err}
	}
	for i, r := range resp {
		if r != nil && !r.Success {
			return &db.ImportError{Collection: collection, Line: i + 1, Reason: r.Error}
		}
	}
	return nil
}

// buildSearchParams maps a SearchRequest onto Typesense search parameters.
func buildSearchParams(req *db.SearchRequest) (*api.SearchCollectionParams, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(req.Query),
		QueryBy: pointer.String(req.QueryBy),
	}
	if req.IncludeFields != "" {
		params.IncludeFields = pointer.String(req.IncludeFields)
	}

	for k, v := range req.Params {
		switch k {
		case query.ParamFilterBy:
			params.FilterBy = pointer.String(v)
		case query.ParamSortBy:
			params.SortBy = pointer.String(v)
		case query.ParamPage, query.ParamPerPage:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q", db.ErrUnsupportedParam, k, v)
			}
			if k == query.ParamPage {
				params.Page = pointer.Int(n)
			} else {
				params.PerPage = pointer.Int(n)
			}
		default:
			return nil, fmt.Errorf("%w: %s", db.ErrUnsupportedParam, k)
		}
	}
	if req.Exact {
		applyExact(params, req)
	}
	return params, nil
}

// applyExact disables prefix and typo matching and pins QueryBy to the
// query value with an equality filter.
func applyExact(params *api.SearchCollectionParams, req *db.SearchRequest) {
	params.Prefix = pointer.String("false")
	params.NumTypos = pointer.String("0")

	// Backticks cannot be escaped inside a filter value.
	if strings.Contains(req.Query, "`") {
		return
	}
	filter := fmt.Sprintf("%s:=`%s`", req.QueryBy, req.Query)
	if params.FilterBy != nil && *params.FilterBy != "" {
		filter = *params.FilterBy + " && " + filter
	}
	params.FilterBy = pointer.String(filter)
}

func convertSearchResult(res *api.SearchResult) *db.SearchResult {
	out := &db.SearchResult{}
	if res == nil {
		return out
	}
	if res.Found != nil {
		out.Found = *res.Found
	}
	if res.Hits == nil {
		return out
	}
	out.Hits = make([]db.Hit, 0, len(*res.Hits))
	for _, h := range *res.Hits {
		var doc db.Document
		if h.Document != nil {
			doc = *h.Document
		}
		out.Hits = append(out.Hits, db.Hit{Document: doc})
	}
	return out
}

func collectionSchema(s *db.CollectionSchema) *api.CollectionSchema {
	fields := make([]api.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		af := api.Field{Name: f.Name, Type: string(f.Type)}
		if f.Optional {
			af.Optional = pointer.True()
		}
		if f.Facet {
			af.Facet = pointer.True()
		}
		if f.Reference != "" {
			af.Reference = pointer.String(f.Reference)
		}
		fields = append(fields, af)
	}
	return &api.CollectionSchema{Name: s.Name, Fields: fields}
}

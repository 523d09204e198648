package typesense

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// fakeNode is a minimal Typesense HTTP API.
type fakeNode struct {
	t           *testing.T
	healthy     bool
	searchFn    func(r *http.Request) (int, string)
	collections map[string]bool
	imported    map[string][]map[string]any
	rejectLine  int
}

func newFakeNode(t *testing.T) (*fakeNode, *Database) {
	t.Helper()
	n := &fakeNode{
		t:           t,
		healthy:     true,
		collections: map[string]bool{},
		imported:    map[string][]map[string]any{},
	}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	return n, newDatabase(srv.URL, "test-key", time.Second)
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-TYPESENSE-API-KEY") != "test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Forbidden - a valid x-typesense-api-key header must be sent."}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")

	path := r.URL.Path
	switch {
	case path == "/health":
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": n.healthy})
	case r.Method == http.MethodPost && path == "/collections":
		var body struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if n.collections[body.Name] {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"A collection with name already exists."}`))
			return
		}
		n.collections[body.Name] = true
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"` + body.Name + `","fields":[],"num_documents":0,"created_at":0}`))
	case strings.HasSuffix(path, "/documents/search"):
		status, body := http.StatusOK, `{"found":0,"hits":[]}`
		if n.searchFn != nil {
			status, body = n.searchFn(r)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	case strings.HasSuffix(path, "/documents/import"):
		name := strings.TrimSuffix(strings.TrimPrefix(path, "/collections/"), "/documents/import")
		sc := bufio.NewScanner(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		line := 0
		var out []string
		for sc.Scan() {
			line++
			var doc map[string]any
			_ = json.Unmarshal(sc.Bytes(), &doc)
			if line == n.rejectLine {
				out = append(out, `{"success":false,"error":"Field title has been declared in the schema, but is not found in the document."}`)
				continue
			}
			n.imported[name] = append(n.imported[name], doc)
			out = append(out, `{"success":true}`)
		}
		_, _ = w.Write([]byte(strings.Join(out, "\n")))
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/collections/"):
		name := strings.TrimPrefix(path, "/collections/")
		if !n.collections[name] {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"name":"` + name + `","fields":[],"num_documents":0,"created_at":0}`))
	default:
		n.t.Errorf("unexpected request %s %s", r.Method, path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func acquire(t *testing.T, d *Database) (db.Session, func()) {
	t.Helper()
	s, release, err := d.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return s, release
}

func TestNewDatabase_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing key", Config{Host: "localhost", Port: 8108}},
		{"missing host", Config{APIKey: "k", Port: 8108}},
		{"bad port", Config{APIKey: "k", Host: "localhost", Port: 0}},
		{"bad protocol", Config{APIKey: "k", Host: "localhost", Port: 8108, Protocol: "grpc"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDatabase(tc.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewDatabase_ServerURL(t *testing.T) {
	d, err := NewDatabase(Config{APIKey: "k", Host: "typesense", Port: 8108})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ServerURL() != "http://typesense:8108" {
		t.Errorf("ServerURL() = %q", d.ServerURL())
	}
}

func TestPing(t *testing.T) {
	n, d := newFakeNode(t)
	s, release := acquire(t, d)
	defer release()

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.healthy = false
	err := s.Ping(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpHealth {
		t.Fatalf("expected health db.Error, got %v", err)
	}
}

func TestSearch_ForwardsParameters(t *testing.T) {
	n, d := newFakeNode(t)
	n.searchFn = func(r *http.Request) (int, string) {
		q := r.URL.Query()
		if r.URL.Path != "/collections/products/documents/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q.Get("q") != "P1" || q.Get("query_by") != "sku" {
			t.Errorf("q=%q query_by=%q", q.Get("q"), q.Get("query_by"))
		}
		if q.Get("include_fields") != "$product_models(*)" {
			t.Errorf("include_fields = %q", q.Get("include_fields"))
		}
		if q.Get("filter_by") != "stock:true" || q.Get("per_page") != "5" {
			t.Errorf("filter_by=%q per_page=%q", q.Get("filter_by"), q.Get("per_page"))
		}
		return http.StatusOK, `{"found":2,"hits":[` +
			`{"document":{"id":"1","sku":"P1"}},` +
			`{"document":{"id":"2","sku":"P1"}}]}`
	}
	s, release := acquire(t, d)
	defer release()

	res, err := s.Search(context.Background(), &db.SearchRequest{
		Collection:    db.CollectionProducts,
		Query:         "P1",
		QueryBy:       "sku",
		IncludeFields: "$product_models(*)",
		Params:        map[string]string{"filter_by": "stock:true", "per_page": "5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found != 2 || len(res.Hits) != 2 {
		t.Fatalf("found=%d hits=%d", res.Found, len(res.Hits))
	}
	if res.Hits[1].Document["id"] != "2" {
		t.Errorf("hit order not preserved: %v", res.Hits[1].Document)
	}
}

func TestSearch_UnsupportedParam(t *testing.T) {
	_, d := newFakeNode(t)
	s, release := acquire(t, d)
	defer release()

	_, err := s.Search(context.Background(), &db.SearchRequest{
		Collection: db.CollectionProducts,
		Query:      "*",
		QueryBy:    "title",
		Params:     map[string]string{"facet_by": "stock"},
	})
	if !errors.Is(err, db.ErrUnsupportedParam) {
		t.Fatalf("expected ErrUnsupportedParam, got %v", err)
	}
}

func TestSearch_BackendError(t *testing.T) {
	n, d := newFakeNode(t)
	n.searchFn = func(_ *http.Request) (int, string) {
		return http.StatusNotFound, `{"message":"Not found."}`
	}
	s, release := acquire(t, d)
	defer release()

	_, err := s.Search(context.Background(), &db.SearchRequest{Collection: "missing", Query: "*", QueryBy: "title"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
		t.Fatalf("expected search db.Error, got %v", err)
	}
}

func TestSession_ClosedAfterRelease(t *testing.T) {
	_, d := newFakeNode(t)
	s, release := acquire(t, d)
	release()

	if err := s.Ping(context.Background()); !errors.Is(err, db.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestCreateCollection(t *testing.T) {
	n, d := newFakeNode(t)
	s, release := acquire(t, d)
	defer release()

	schema, _ := db.LookupSchema(db.CollectionCategories)
	if err := s.CreateCollection(context.Background(), &schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.collections[db.CollectionCategories] {
		t.Fatal("collection not created")
	}

	ok, err := s.CollectionExists(context.Background(), db.CollectionCategories)
	if err != nil || !ok {
		t.Fatalf("CollectionExists = %v, %v", ok, err)
	}
	ok, err = s.CollectionExists(context.Background(), db.CollectionProducts)
	if err != nil || ok {
		t.Fatalf("CollectionExists(products) = %v, %v", ok, err)
	}

	if err := s.CreateCollection(context.Background(), &schema); !errors.Is(err, db.ErrCollectionExists) {
		t.Fatalf("expected ErrCollectionExists, got %v", err)
	}
}

func TestImport(t *testing.T) {
	n, d := newFakeNode(t)
	s, release := acquire(t, d)
	defer release()

	docs := []db.Document{
		{"id": "1", "title": "Acme", "image_url": "https://img.example.com/acme.png"},
		{"id": "2", "title": "Globex", "image_url": "https://img.example.com/globex.png"},
	}
	if err := s.Import(context.Background(), db.CollectionManufacturers, docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.imported[db.CollectionManufacturers]) != 2 {
		t.Fatalf("imported %d docs", len(n.imported[db.CollectionManufacturers]))
	}
}

func TestImport_RejectedDocument(t *testing.T) {
	n, d := newFakeNode(t)
	n.rejectLine = 2
	s, release := acquire(t, d)
	defer release()

	docs := []db.Document{{"id": "1", "title": "Acme"}, {"id": "2"}}
	err := s.Import(context.Background(), db.CollectionManufacturers, docs)
	var ie *db.ImportError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if ie.Line != 2 || ie.Collection != db.CollectionManufacturers {
		t.Errorf("got %+v", ie)
	}
}

func TestCollectionSchema_References(t *testing.T) {
	s, _ := db.LookupSchema(db.CollectionModels)
	out := collectionSchema(&s)
	var found bool
	for _, f := range out.Fields {
		if f.Name == "product_manufacturer_id" {
			found = true
			if f.Reference == nil || *f.Reference != "product_manufacturers.id" {
				t.Errorf("reference = %v", f.Reference)
			}
			if f.Facet == nil || !*f.Facet {
				t.Error("expected facet")
			}
		}
	}
	if !found {
		t.Fatal("reference field missing")
	}
}

func TestBuildSearchParams_Exact(t *testing.T) {
	tests := []struct {
		name       string
		req        *db.SearchRequest
		wantFilter string
	}{
		{"sku lookup", &db.SearchRequest{Query: "P1", QueryBy: "sku", Exact: true}, "sku:=`P1`"},
		{"combined with filter", &db.SearchRequest{
			Query: "P1", QueryBy: "sku", Exact: true,
			Params: map[string]string{"filter_by": "stock:true"},
		}, "stock:true && sku:=`P1`"},
		{"backtick in value", &db.SearchRequest{Query: "P`1", QueryBy: "sku", Exact: true}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, err := buildSearchParams(tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if params.Prefix == nil || *params.Prefix != "false" {
				t.Errorf("prefix = %v", params.Prefix)
			}
			if params.NumTypos == nil || *params.NumTypos != "0" {
				t.Errorf("num_typos = %v", params.NumTypos)
			}
			got := ""
			if params.FilterBy != nil {
				got = *params.FilterBy
			}
			if got != tc.wantFilter {
				t.Errorf("filter_by = %q, want %q", got, tc.wantFilter)
			}
		})
	}
}

func TestBuildSearchParams_FreeTextKeepsDefaults(t *testing.T) {
	params, err := buildSearchParams(&db.SearchRequest{Query: "wrench", QueryBy: "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Prefix != nil || params.NumTypos != nil || params.FilterBy != nil {
		t.Errorf("free text must keep backend defaults: prefix=%v num_typos=%v filter_by=%v",
			params.Prefix, params.NumTypos, params.FilterBy)
	}
}

func TestSearch_ExactSendsStrictParams(t *testing.T) {
	n, d := newFakeNode(t)
	n.searchFn = func(r *http.Request) (int, string) {
		q := r.URL.Query()
		if q.Get("prefix") != "false" || q.Get("num_typos") != "0" || q.Get("filter_by") != "sku:=`P1`" {
			t.Errorf("prefix=%q num_typos=%q filter_by=%q", q.Get("prefix"), q.Get("num_typos"), q.Get("filter_by"))
		}
		return http.StatusOK, `{"found":1,"hits":[{"document":{"id":"1","sku":"P1"}}]}`
	}
	s, release := acquire(t, d)
	defer release()

	res, err := s.Search(context.Background(), &db.SearchRequest{
		Collection: db.CollectionProducts,
		Query:      "P1",
		QueryBy:    "sku",
		Exact:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found != 1 {
		t.Errorf("found = %d", res.Found)
	}
}

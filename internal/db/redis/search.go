package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/domain/search/query"
)

// Typesense defaults, mirrored so both drivers page the same way.
const (
	defaultPage    = 1
	defaultPerPage = 10
)

// Search runs FT.SEARCH over the denormalised product documents. The
// stored documents already carry the include-field shape, so
// IncludeFields is not re-applied.
func (s *session) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	if req.Collection != db.CollectionProducts {
		return nil, fmt.Errorf("%w: %s is not searchable", db.ErrUnknownCollection, req.Collection)
	}

	offset, limit, err := pageWindow(req.Params)
	if err != nil {
		return nil, err
	}
	q, err := buildQuery(req.Query, req.QueryBy)
	if err != nil {
		return nil, err
	}

	args := []string{
		productIndex, q,
		"RETURN", "1", "$",
		"LIMIT", strconv.Itoa(offset), strconv.Itoa(limit),
		"DIALECT", "2",
	}
	cmd := s.store.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.store.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// buildQuery translates a Typesense-style q/query_by pair into RediSearch syntax.
func buildQuery(q, queryBy string) (string, error) {
	if q == "" || q == query.MatchAll {
		return "*", nil
	}
	switch queryBy {
	case "sku":
		return fmt.Sprintf("@sku:{%s}", tagEscaper.Replace(q)), nil
	case "title":
		return fmt.Sprintf("@title:(%s)", queryEscaper.Replace(q)), nil
	default:
		return "", fmt.Errorf("%w: query_by=%s", db.ErrUnsupportedParam, queryBy)
	}
}

// pageWindow converts page/per_page into a LIMIT window. Filtering and
// sorting expressions are Typesense syntax and are rejected here.
func pageWindow(params map[string]string) (offset, limit int, err error) {
	page, perPage := defaultPage, defaultPerPage
	for k, v := range params {
		switch k {
		case query.ParamPage, query.ParamPerPage:
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n < 1 {
				return 0, 0, fmt.Errorf("%w: %s=%q", db.ErrUnsupportedParam, k, v)
			}
			if k == query.ParamPage {
				page = n
			} else {
				perPage = n
			}
		default:
			return 0, 0, fmt.Errorf("%w: %s is not supported by the redis driver", db.ErrUnsupportedParam, k)
		}
	}
	return (page - 1) * perPage, perPage, nil
}

func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	hits := make([]db.Hit, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse key: %w", err)
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse fields of %s: %w", key, err)
		}
		body, ok := parseFieldPairs(fields)["$"]
		if !ok {
			return nil, fmt.Errorf("document %s has no JSON body", key)
		}
		var doc db.Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		hits = append(hits, db.Hit{Document: doc})
	}

	return &db.SearchResult{Found: int(total), Hits: hits}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
)

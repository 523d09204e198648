package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// jsonSetMulti stores documents under their keys in one round trip.
func (s *Store) jsonSetMulti(ctx context.Context, keys []string, docs []db.Document) error {
	if len(keys) == 0 {
		return nil
	}
	cmds := make(rueidis.Commands, 0, len(keys))
	for i, key := range keys {
		data, err := json.Marshal(docs[i])
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		cmds = append(cmds, s.b().Arbitrary("JSON.SET").Keys(key).Args("$", string(data)).Build())
	}
	for _, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpJSONSet, Err: err}
		}
	}
	return nil
}

// jsonGet loads the document stored at key; ok is false if it is absent.
func (s *Store) jsonGet(ctx context.Context, key string) (db.Document, bool, error) {
	cmd := s.b().Arbitrary("JSON.GET").Keys(key).Args("$").Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, false, nil
	}
	// "$" path returns an array of matches.
	var docs []db.Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if len(docs) == 0 {
		return nil, false, nil
	}
	return docs[0], true, nil
}

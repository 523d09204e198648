package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// setMarker records a collection as created. Returns false if it already was.
func (s *Store) setMarker(ctx context.Context, collection string) (bool, error) {
	cmd := s.b().Set().Key(markerKey(collection)).Value("1").Nx().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpCreateCollection, Err: err}
	}
	return true, nil
}

func (s *Store) hasMarker(ctx context.Context, collection string) (bool, error) {
	cmd := s.b().Exists().Key(markerKey(collection)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpGetCollection, Err: err}
	}
	return n > 0, nil
}

package redis

import (
	"context"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// session is a scoped view of the shared client. Releasing it does not
// touch the connection.
type session struct {
	db.Guard
	store *Store
}

// Ping checks connectivity.
func (s *session) Ping(ctx context.Context) error {
	if err := s.Check(); err != nil {
		return err
	}
	cmd := s.store.b().Ping().Build()
	if err := s.store.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpHealth, Err: err}
	}
	return nil
}

// Package driver opens the configured search backend.
package driver

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/storecatalog/internal/config"
	"github.com/kailas-cloud/storecatalog/internal/db"
	dbRedis "github.com/kailas-cloud/storecatalog/internal/db/redis"
	dbTypesense "github.com/kailas-cloud/storecatalog/internal/db/typesense"
)

// Open creates the store selected by cfg.Driver. It does not wait for the
// backend to become reachable; callers follow up with db.WaitForReady.
func Open(cfg config.SearchConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverTypesense, "":
		ts := cfg.Typesense
		store, err := dbTypesense.NewDatabase(dbTypesense.Config{
			APIKey:            ts.APIKey,
			Host:              ts.Host,
			Port:              ts.Port,
			Protocol:          ts.Protocol,
			ConnectionTimeout: time.Duration(ts.ConnectionTimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("open typesense: %w", err)
		}
		return store, nil
	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown search driver %q", cfg.Driver)
	}
}

// Name returns the metrics label of the configured driver.
func Name(cfg config.SearchConfig) string {
	if cfg.Driver == "" {
		return config.DriverTypesense
	}
	return cfg.Driver
}

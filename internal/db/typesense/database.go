// Package typesense implements the catalog search backend on Typesense.
package typesense

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	ts "github.com/typesense/typesense-go/v2/typesense"

	"github.com/kailas-cloud/storecatalog/internal/db"
)

// Compile-time check: Database implements db.Store.
var _ db.Store = (*Database)(nil)

const defaultConnectionTimeout = 10 * time.Second

// Config holds the static connection settings of a single Typesense node.
type Config struct {
	APIKey            string
	Host              string
	Port              int
	Protocol          string // http or https
	ConnectionTimeout time.Duration
}

// Database builds a fresh Typesense client for every session.
// TODO: accept a node list once the catalog runs against a Typesense cluster.
type Database struct {
	serverURL string
	timeout   time.Duration
	newClient func() *ts.Client
}

// NewDatabase validates cfg and creates a Database.
func NewDatabase(cfg Config) (*Database, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("typesense: api key is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("typesense: host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("typesense: port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.Protocol == "" {
		cfg.Protocol = "http"
	}
	if cfg.Protocol != "http" && cfg.Protocol != "https" {
		return nil, fmt.Errorf("typesense: protocol must be http or https, got %q", cfg.Protocol)
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = defaultConnectionTimeout
	}

	serverURL := cfg.Protocol + "://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return newDatabase(serverURL, cfg.APIKey, cfg.ConnectionTimeout), nil
}

func newDatabase(serverURL, apiKey string, timeout time.Duration) *Database {
	return &Database{
		serverURL: serverURL,
		timeout:   timeout,
		newClient: func() *ts.Client {
			return ts.NewClient(
				ts.WithServer(serverURL),
				ts.WithAPIKey(apiKey),
				ts.WithConnectionTimeout(timeout),
			)
		},
	}
}

// Acquire builds a client for one scoped session.
func (d *Database) Acquire(_ context.Context) (db.Session, func(), error) {
	s := &session{client: d.newClient(), timeout: d.timeout}
	return s, s.Release, nil
}

// ServerURL returns the node URL the sessions talk to.
func (d *Database) ServerURL() string { return d.serverURL }

// Close is a no-op: sessions own no long-lived resources.
func (d *Database) Close() {}

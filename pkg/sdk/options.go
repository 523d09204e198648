package storecatalog

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/storecatalog/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	search           config.SearchConfig
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithTypesense configures the client to query a Typesense node over http.
func WithTypesense(host string, port int, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.search.Driver = config.DriverTypesense
		c.search.Typesense.Host = host
		c.search.Typesense.Port = port
		c.search.Typesense.APIKey = apiKey
		if c.search.Typesense.Protocol == "" {
			c.search.Typesense.Protocol = "http"
		}
	})
}

// WithHTTPS switches the Typesense connection to https.
func WithHTTPS() Option {
	return optionFunc(func(c *clientConfig) {
		c.search.Typesense.Protocol = "https"
	})
}

// WithConnectionTimeout sets the Typesense request timeout. Default: 10s.
func WithConnectionTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.search.Typesense.ConnectionTimeoutSec = int(d / time.Second)
	})
}

// WithRedis configures the client to query a Redis instance with the Search
// and JSON modules.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.search.Driver = config.DriverRedis
		c.search.Redis.Addrs = []string{addr}
		c.search.Redis.Password = password
	})
}

// WithReadinessTimeout bounds how long New waits for the backend. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

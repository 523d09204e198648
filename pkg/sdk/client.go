package storecatalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/db/driver"
	productrepo "github.com/kailas-cloud/storecatalog/internal/repository/product"
	healthuc "github.com/kailas-cloud/storecatalog/internal/usecase/health"
	searchuc "github.com/kailas-cloud/storecatalog/internal/usecase/search"
	seeduc "github.com/kailas-cloud/storecatalog/internal/usecase/seed"
)

// Client is the store catalog SDK entry point.
type Client struct {
	store      db.Store
	productSvc productUseCase
	healthSvc  healthUseCase
	catalogSvc catalogUseCase
	obs        *observer
}

// New creates a Client and waits until the backend answers.
// The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.search.Driver == "" {
		return nil, errors.New("storecatalog: search backend required (use WithTypesense or WithRedis)")
	}

	store, err := driver.Open(cfg.search)
	if err != nil {
		return nil, fmt.Errorf("storecatalog: %w", err)
	}

	if err := db.WaitForReady(ctx, store, cfg.readinessTimeout, db.DefaultReadinessInterval); err != nil {
		store.Close()
		return nil, fmt.Errorf("storecatalog: search backend not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, obs), nil
}

func wireClient(store db.Store, obs *observer) *Client {
	// The SDK reports through slog; internal packages get a no-op zap logger.
	nop := zap.NewNop()

	repo := productrepo.New(store)
	seedSvc := seeduc.New(store, nop)

	return &Client{
		store:      store,
		productSvc: searchuc.New(repo),
		healthSvc:  healthuc.New(db.ProviderPinger{Provider: store}, seedSvc),
		catalogSvc: seedSvc,
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks backend connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, err) }()

	if err = (db.ProviderPinger{Provider: c.store}).Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Products returns the product lookup and search service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.productSvc, obs: c.obs}
}

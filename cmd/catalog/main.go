package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/config"
	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/db/driver"
	logpkg "github.com/kailas-cloud/storecatalog/internal/logger"
	"github.com/kailas-cloud/storecatalog/internal/metrics"
	productrepo "github.com/kailas-cloud/storecatalog/internal/repository/product"
	chiTransport "github.com/kailas-cloud/storecatalog/internal/transport/chi"
	healthuc "github.com/kailas-cloud/storecatalog/internal/usecase/health"
	searchuc "github.com/kailas-cloud/storecatalog/internal/usecase/search"
	seeduc "github.com/kailas-cloud/storecatalog/internal/usecase/seed"
	"github.com/kailas-cloud/storecatalog/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	backend := driver.Name(cfg.Search)
	logger.Info("Starting store catalog API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_driver", backend),
	)

	store, err := driver.Open(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to create search store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	err = db.WaitForReady(ctx, store, cfg.Search.ReadinessTimeout(), cfg.Search.ReadinessInterval())
	if err != nil {
		logger.Fatal("Search backend not ready", zap.Error(err))
	}
	logger.Info("Connected to search backend")

	metrics.RegisterSearchMetrics()

	repo := productrepo.NewInstrumented(productrepo.New(store), backend, logger)
	searchSvc := searchuc.New(repo)
	seedSvc := seeduc.New(store, logger)
	healthSvc := healthuc.New(db.ProviderPinger{Provider: store}, seedSvc)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware(backend))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"route not found"}` + "\n"))
	})
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/backend"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/cache"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/cli"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/config"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	apphttp "github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/http"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/services"
)

const (
	propertyCacheSize = 256
	shutdownTimeout   = 30 * time.Second
)

// app is the wired API process.
type app struct {
	server  *apphttp.Server
	caches  *cache.Manager
	backend *backend.Result
	logger  *log.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	properties := cache.NewLRUCache[core.Property](propertyCacheSize, cfg.PropertyCacheTTL)
	caches := cache.NewManager(logger)
	caches.Register(properties)
	caches.StartCleanup(cfg.PropertyCacheTTL)

	ledger := services.NewLedgerService(res.Store,
		services.WithEvents(res.Events()),
		services.WithPropertyCache(properties),
		services.WithLogger(logger),
	)
	reports := services.NewReportService(res.Store, logger)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Ledger:      ledger,
		Reports:     reports,
		Ready:       ledger.Ping,
		RateLimit:   cfg.RateLimitPerMinute,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.WithComponent(log.ComponentHTTP),
	})
	return &app{server: srv, caches: caches, backend: res, logger: logger}, nil
}

// shutdown drains the server, then stops the caches and releases the backend.
func (a *app) shutdown(ctx context.Context) {
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", log.FieldError, err)
	}
	a.caches.Stop()
	if err := a.backend.Cleanup(); err != nil {
		a.logger.Error("Backend cleanup error", log.FieldError, err)
	}
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(context.Background(), logger, shutdownTimeout, a.shutdown)

	logger.Info("Starting hospede server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"events", cfg.AMQPEnabled())
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	<-done
	logger.Info("Server stopped gracefully")
}

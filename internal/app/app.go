package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sameer-09816/api/internal/clients"
	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	"github.com/Sameer-09816/api/internal/handler"
	"github.com/Sameer-09816/api/internal/service"
	"github.com/Sameer-09816/api/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	cfg     *config.Config
	server  *fiber.App
	cache   domain.ThreadCache
	janitor *janitor
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	configureLogging(cfg)

	cache, err := openCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	app := &App{
		cfg:   cfg,
		cache: cache,
	}
	app.wireServices()

	return app, nil
}

func configureLogging(cfg *config.Config) {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
}

// openCache returns the bolthold-backed cache, except under prefork:
// bbolt takes an exclusive file lock, so the re-execed workers would
// block forever opening the database the first process already holds.
// Prefork workers run uncached instead.
func openCache(cfg *config.Config) (domain.ThreadCache, error) {
	if cfg.Prefork {
		log.WithField("component", "cache").Warn("prefork enabled, thread cache disabled")
		return storage.NewNoopThreadCache(), nil
	}

	store, err := bolthold.Open(cfg.DBPath(), cfg.DBFilePermissions, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return storage.NewThreadCache(store, cfg.CacheTTL), nil
}

func (a *App) wireServices() {
	fetcher := clients.NewThreadsterFetcher(a.cfg)
	downloadSvc := service.NewDownloadService(a.cfg, a.cache, fetcher)
	httpHandler := handler.NewHTTPHandler(a.cfg, downloadSvc)

	a.server = newFiberApp(a.cfg, httpHandler)
	a.janitor = newJanitor(a.cfg, a.cache)
}

func newFiberApp(cfg *config.Config, h *handler.HTTPHandler) *fiber.App {
	server := fiber.New(fiber.Config{
		ErrorHandler:          h.HandleError,
		Prefork:               cfg.Prefork,
		DisableStartupMessage: true,
	})

	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.OriginsCSV(),
		AllowMethods:     "GET,OPTIONS",
		AllowCredentials: !cfg.Wildcard(),
	}))

	h.RegisterRoutes(server)
	return server
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !a.cfg.Prefork {
		go a.janitor.RunPeriodically(ctx)
	}
	go a.startServer()

	return a.waitForShutdown(ctx, cancel)
}

func (a *App) startServer() {
	log.WithFields(log.Fields{
		"component": "server",
		"address":   a.cfg.ListenAddr(),
	}).Info("http server listening")

	if err := a.server.Listen(a.cfg.ListenAddr()); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Fatal("http server failed to start")
	}
}

func (a *App) waitForShutdown(ctx context.Context, cancel context.CancelFunc) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		log.WithField("reason", "context_cancelled").Info("initiating graceful shutdown")
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("received shutdown signal")
	}

	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info("graceful shutdown started")

	if err := a.server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Error("http server shutdown failed")
	}

	if err := a.cache.Close(); err != nil {
		log.WithFields(log.Fields{
			"component": "database",
			"error":     err,
		}).Error("cache close failed")
		return err
	}

	log.Info("graceful shutdown completed")
	return nil
}

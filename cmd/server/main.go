package main

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/auth"
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logging"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// @title Fitness Tracker API
// @version 1.0
// @description Workout programs, logs, personal records, food logs and exercise media.
// @BasePath /api/v1
// @securityDefinitions.basic BasicAuth
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	hostname, _ := os.Hostname()
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.Log.File,
		LogToStdout:      cfg.Log.Stdout,
		LogLevel:         cfg.Log.Level,
		LogFormatJSON:    cfg.Log.JSON,
		Environment:      cfg.Log.SentryEnv,
		SentryEnabled:    cfg.Log.SentryEnabled,
		SentryDSN:        cfg.Log.SentryDSN,
		SentryServerName: hostname,
	})
	log.WithFields(log.Fields{
		"address": cfg.Server.Address,
		"driver":  cfg.Database.Driver,
		"auth":    cfg.Auth.Provider,
	}).Info("starting fitness tracker server")

	ctx := context.Background()

	// --- Database Connection ---
	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("could not open %s store: %v", cfg.Database.Driver, err)
	}

	// --- Initialize Storage ---
	files, err := storage.New(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	if cfg.Catalog.Path != "" {
		if err := seedCatalog(ctx, cfg.Catalog.Path, store, files); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
	}

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize auth: %v", err)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, registry)
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = registry
	}

	// --- Initialize Services ---
	services := service.New(service.Dependencies{
		Store:     store,
		Files:     files,
		Metrics:   metricsManager,
		URLExpiry: cfg.S3.URLExpiry,
	})

	gin.SetMode(cfg.Server.GinMode)
	router := api.NewRouter(api.RouterConfig{
		Services:  services,
		Verifier:  verifier,
		Metrics:   metricsManager,
		AuthRealm: cfg.Server.AuthRealm,
		Gatherer:  gatherer,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Infof("received %s, shutting down", sig)
	case err := <-serveErr:
		log.Errorf("server stopped: %v", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	err = multierr.Append(server.Shutdown(ctxShutdown), closeStore())
	if err != nil {
		log.Fatalf("unclean shutdown: %v", err)
	}
	log.Info("server exited")
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (repository.Store, func() error, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using the in-memory store, data is lost on exit")
		return memory.NewStore(), func() error { return nil }, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return repository.Store{}, nil, err
	}
	db := client.Database(cfg.Name)

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	mongo.EnsureIndexes(indexCtx, db)
	log.WithField("database", cfg.Name).Info("database connection established")

	return mongo.NewStore(client, db), func() error {
		log.Info("disconnecting MongoDB")
		return mongo.DisconnectDB(client)
	}, nil
}

// seedCatalog loads the default exercises and programs. Against the
// in-memory file storage the catalog objects are registered as present so
// their media resolves.
func seedCatalog(ctx context.Context, path string, store repository.Store, files storage.FileStorage) error {
	c, err := catalog.Load(path)
	if err != nil {
		return err
	}
	if mem, ok := files.(*storage.MemoryStorage); ok {
		for _, key := range c.ObjectKeys() {
			mem.Put(key, "")
		}
	}
	_, err = catalog.Seed(ctx, store, c)
	return err
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"

	"github.com/mswatii/cs2-tradeup/internal/api"
	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/config"
	"github.com/mswatii/cs2-tradeup/internal/database"
	"github.com/mswatii/cs2-tradeup/internal/logger"
	"github.com/mswatii/cs2-tradeup/internal/metrics"
	"github.com/mswatii/cs2-tradeup/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	addSource := cfg.Environment == "dev"
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newCatalogSource(ctx, cfg)
	if err != nil {
		slog.Error("Failed to set up catalog source", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	// An unusable catalog at startup is fatal; later reload failures keep the last snapshot
	catalogs := catalog.NewStore(source)
	if _, err := catalogs.Reload(ctx); err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	if cfg.CatalogSource == config.CatalogSourceFiles && cfg.CatalogWatchInterval > 0 {
		watcher, err := newCatalogWatcher(ctx, cfg, catalogs)
		if err != nil {
			slog.Error("Failed to start catalog watcher", "error", err)
			os.Exit(1)
		}
		go watcher.Run(ctx)
	}

	sessions := session.NewStore(cfg.SessionCacheSize, cfg.SessionTTL)
	handler := api.NewHandler(catalogs, sessions, cfg.WebDir)

	server := &fasthttp.Server{
		Handler: metrics.Middleware(handler.HandleRequest),
		Name:    cfg.ServiceName,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")
		if err := server.Shutdown(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Starting server", "addr", addr, "catalog_source", cfg.CatalogSource)
	if err := server.ListenAndServe(addr); err != nil {
		slog.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

// newCatalogSource returns the configured source and a func releasing it.
func newCatalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, func(), error) {
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		db, err := database.NewDatabase(ctx, cfg.GetDBConnString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateTables(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return catalog.SourceFunc(db.LoadCatalog), db.Close, nil
	default:
		return catalog.NewFileSource(cfg.CatalogManifest), func() {}, nil
	}
}

// newCatalogWatcher reloads the catalog whenever a dump listed in the
// manifest changes on disk.
func newCatalogWatcher(ctx context.Context, cfg *config.Config, catalogs *catalog.Store) (*catalog.FileWatcher, error) {
	m, err := catalog.LoadManifest(cfg.CatalogManifest)
	if err != nil {
		return nil, err
	}
	paths := append(m.Paths(), cfg.CatalogManifest)

	watcher := catalog.NewFileWatcher(paths, cfg.CatalogWatchInterval, func(path string) {
		slog.Info("Catalog file changed", "path", path)
		if _, err := catalogs.Reload(ctx); err != nil {
			slog.Warn("Catalog reload failed, keeping previous snapshot", "error", err)
		}
	})
	slog.Info("Watching catalog files", "files", len(paths), "interval", cfg.CatalogWatchInterval)
	return watcher, nil
}

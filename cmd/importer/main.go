// Command importer loads the container dumps listed in a manifest into
// Postgres so servers can run with CATALOG_SOURCE=postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/config"
	"github.com/mswatii/cs2-tradeup/internal/database"
	"github.com/mswatii/cs2-tradeup/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	manifest := flag.String("manifest", cfg.CatalogManifest, "path to the catalog manifest")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing to the database")
	flag.Parse()

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "cs2-tradeup-importer", cfg.Version, cfg.Environment, false))

	if err := run(context.Background(), cfg, *manifest, *dryRun); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, manifest string, dryRun bool) error {
	cat, report, err := catalog.NewFileSource(manifest).LoadWithReport(ctx)
	if err != nil {
		return err
	}
	for _, problem := range report.Problems {
		slog.Warn("Skipped record", "problem", problem)
	}
	slog.Info("Parsed catalog",
		"containers", report.Containers,
		"items", report.Items,
		"skipped", report.Skipped,
		"collections", len(cat.Collections()))

	if dryRun {
		return nil
	}

	db, err := database.NewDatabase(ctx, cfg.GetDBConnString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateTables(ctx); err != nil {
		return err
	}
	if err := db.SaveCatalog(ctx, cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	slog.Info("Catalog imported", "items", cat.Len())
	return nil
}

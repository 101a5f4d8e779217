package main

import (
	"context"
	"log"

	"scholarmatch/internal/catalog"
	"scholarmatch/internal/models"
	"scholarmatch/internal/repository"
	"scholarmatch/pkg/config"
	"scholarmatch/pkg/logger"
	"scholarmatch/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	kind := models.Kind(cfg.Catalog.Kind)
	catalogRepo := repository.NewCatalogRepository(db, kind, appLogger)

	if err := catalogRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	appLogger.Info("Starting database seeding",
		zap.String("kind", cfg.Catalog.Kind),
		zap.Int64("seed", cfg.Catalog.Seed),
		zap.Int("size", cfg.Catalog.Size))

	gen := catalog.NewGenerator(cfg.Catalog.Seed)

	var records []models.Record
	switch kind {
	case models.KindUniversity:
		records = gen.Universities(cfg.Catalog.Size)
	default:
		records = gen.Scholarships(cfg.Catalog.Size)
	}

	// Insert in chunks so a single bad batch does not abort the whole run
	// with an oversized statement.
	const batchSize = 500
	inserted := 0
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := catalogRepo.InsertBatch(ctx, records[start:end]); err != nil {
			appLogger.Fatal("Failed to insert batch",
				zap.Int("offset", start),
				zap.Error(err))
		}
		inserted += end - start
	}

	appLogger.Info("Database seeding completed successfully",
		zap.Int("records", inserted))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scholarmatch/internal/api"
	"scholarmatch/internal/api/handlers"
	"scholarmatch/internal/models"
	"scholarmatch/internal/repository"
	"scholarmatch/internal/service"
	"scholarmatch/pkg/config"
	"scholarmatch/pkg/logger"
	"scholarmatch/pkg/postgres"

	"go.uber.org/zap"
)

// @title ScholarMatch API
// @version 1.0
// @description Content-based recommendations and retrieval-grounded chat over scholarship and university catalogs

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting ScholarMatch service",
		zap.String("catalog_kind", cfg.Catalog.Kind))

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	kind := models.Kind(cfg.Catalog.Kind)
	catalogRepo := repository.NewCatalogRepository(db, kind, appLogger)

	// Build the recommendation engine: load the catalog, then restore the
	// fitted encoder and index from the snapshot or fit them fresh.
	engine := service.NewEngine(catalogRepo, cfg.Index.Components, cfg.Index.ModelPath, appLogger)
	if err := engine.Start(ctx); err != nil {
		var loadErr *models.LoadError
		if errors.As(err, &loadErr) {
			appLogger.Fatal("Persisted model snapshot is unusable, refusing to start",
				zap.String("path", loadErr.Path),
				zap.Error(loadErr.Err))
		}
		appLogger.Fatal("Failed to start recommendation engine", zap.Error(err))
	}

	// Initialize services
	llmService := service.NewLLMService(&cfg.GigaChat, appLogger)
	defer llmService.Close()

	recService := service.NewRecommendService(engine, appLogger)
	chatService := service.NewChatService(engine, llmService, cfg.Retrieval.TopK, cfg.GigaChat.Timeout, appLogger)

	// Initialize handlers
	recHandler := handlers.NewRecommendHandler(recService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)

	// Setup router
	app := api.SetupRouter(recHandler, chatHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"scholarmatch/internal/models"
	"scholarmatch/internal/repository"
	"scholarmatch/internal/service"
	"scholarmatch/pkg/config"
	"scholarmatch/pkg/logger"
	"scholarmatch/pkg/postgres"

	"github.com/fatih/color"
)

// Interactive terminal client for the catalog chat pipeline. Talks to the
// same engine and services as the HTTP server, without going through it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Keep structured logs out of the conversation; errors still surface.
	if err := logger.Init("error"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	kind := models.Kind(cfg.Catalog.Kind)
	catalogRepo := repository.NewCatalogRepository(db, kind, appLogger)

	engine := service.NewEngine(catalogRepo, cfg.Index.Components, cfg.Index.ModelPath, appLogger)
	if err := engine.Start(ctx); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	llmService := service.NewLLMService(&cfg.GigaChat, appLogger)
	defer llmService.Close()

	chatService := service.NewChatService(engine, llmService, cfg.Retrieval.TopK, cfg.GigaChat.Timeout, appLogger)
	recService := service.NewRecommendService(engine, appLogger)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println(boldGreen("ScholarMatch Chat"))
	fmt.Printf("Catalog: %s\n", boldCyan(cfg.Catalog.Kind))
	if !llmService.Available() {
		fmt.Println(yellow("Running in fallback mode (GigaChat API not configured)"))
	}
	fmt.Println("Ask about the catalog. Type 'stats' for catalog statistics, 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			return
		case "stats":
			stats, err := recService.Stats()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Print(boldCyan("Assistant: "))
			fmt.Printf("%d %s records, %d countries, feature dimension %d (index %d)\n\n",
				stats.TotalRecords, stats.Kind, len(stats.ByCountry), stats.FeatureDim, stats.IndexDim)
			continue
		}

		result, err := chatService.Chat(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Print(boldCyan("Assistant: "))
		fmt.Println(result.Response)
		if result.UsedGeneration {
			fmt.Println(yellow(fmt.Sprintf("(generated, grounded in %d records)", len(result.MatchedNames))))
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
	}
}

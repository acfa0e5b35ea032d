package main

import (
	"context"
	"log"
	"time"

	"github.com/ahmednasr/repo-tools/internal/config"
	"github.com/ahmednasr/repo-tools/internal/database"
	"github.com/ahmednasr/repo-tools/internal/handler"
	"github.com/ahmednasr/repo-tools/internal/pipeline"
	"github.com/ahmednasr/repo-tools/internal/repository"
	"github.com/ahmednasr/repo-tools/internal/service"
)

// main is the single entry‑point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - GitHub API: %s (token set: %t)", cfg.GitHubAPIURL, cfg.GitHubToken != "")
	log.Printf("  - Completion: %s %s (model %s)", cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMModel)
	if cfg.HasDefaultRepo() {
		log.Printf("  - Default repository: %s/%s", cfg.DefaultRepoOwner, cfg.DefaultRepoName)
	}

	// Optional recent-repository history
	var (
		historyStore  service.HistoryRepository
		historyHealth handler.Pinger
	)
	if cfg.MongoURI != "" {
		client, err := database.NewMongo(context.Background(), cfg.MongoURI, 10*time.Second)
		if err != nil {
			log.Printf("Warning: MongoDB unavailable, history disabled: %v", err)
		} else {
			defer client.Disconnect(context.Background())
			repo := repository.NewHistoryRepository(client.Database(cfg.DBName))
			historyStore, historyHealth = repo, repo
			log.Printf("Connected to MongoDB, using database: %s", cfg.DBName)
		}
	}

	historySvc := service.NewHistoryService(historyStore)

	// Initialize the question-answering pipeline
	p, err := pipeline.New(cfg, historySvc)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	// Create Fiber app with middleware
	app := handler.NewApp(cfg.ReadTimeout, cfg.WriteTimeout)

	// Register routes
	handler.RegisterRoutes(app, p.Ask, p.Catalog, historySvc)

	// Add health check
	healthHandler := handler.NewHealthHandler(p.Completion, historyHealth, cfg.LLMPingTimeout+2*time.Second)
	healthHandler.Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

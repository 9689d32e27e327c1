package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/api"
	"github.com/erdmkk/football-gossip-bot/app/cfg"
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/dedup"
	"github.com/erdmkk/football-gossip-bot/app/fetch"
	"github.com/erdmkk/football-gossip-bot/app/pipeline"
	"github.com/erdmkk/football-gossip-bot/app/publish"
	"github.com/erdmkk/football-gossip-bot/app/render"
	"github.com/erdmkk/football-gossip-bot/app/score"
	"github.com/erdmkk/football-gossip-bot/app/tables"
	"github.com/erdmkk/football-gossip-bot/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}
	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Println("Starting news bot...")

	// Database connection
	log.Printf("Opening database at %s...", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	schemaVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database ready at schema version %d (dirty: %v)", schemaVersion, dirty)

	// Load data tables
	tablesCache := tables.NewCache(appCfg.TablesDir)
	if err := tablesCache.Run(); err != nil {
		log.Fatal("Failed to load data tables:", err)
	}
	log.Printf("Reading %d feeds", len(tablesCache.Feeds()))

	// Initialize repositories and publishing machinery
	changeRepo := database.NewChangeRepository(db)
	postRepo := database.NewPostRepository(db)

	dedupWindow := time.Duration(appCfg.DedupWindowHours) * time.Hour
	memory := dedup.NewMemory(postRepo, changeRepo)
	if err := memory.Warm(time.Now().Add(-dedupWindow)); err != nil {
		log.Printf("Warning: failed to warm dedup memory: %v", err)
	}

	gate, err := publish.NewGate(appCfg.MaxPostsPerDay, appCfg.ActiveHoursStart, appCfg.ActiveHoursEnd)
	if err != nil {
		log.Fatal("Invalid active hours configuration:", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	var publisher publish.Publisher
	if appCfg.AccessToken != "" {
		publisher = publish.NewClient(appCfg.AccessToken, appCfg.UserAgent, httpClient)
	} else {
		log.Println("No access token configured, posts will be logged only")
		publisher = publish.NewDryRunPublisher()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	deps := pipeline.Deps{
		Memory:    memory,
		Renderer:  render.NewRenderer(tablesCache.Scoring(), rng),
		Gate:      gate,
		Publisher: publisher,
		Posts:     postRepo,
	}

	source := fetch.NewRSSFetcher(tablesCache.Feeds(), httpClient, appCfg.UserAgent)
	news := pipeline.NewNewsPipeline(deps, source, score.NewNewsScorer(tablesCache.Scoring()), rng,
		pipeline.NewsOptions{
			MinScore:      appCfg.MinScore,
			TopK:          appCfg.TopK,
			MaxArticles:   appCfg.MaxArticles,
			DedupWindow:   dedupWindow,
			Backoff:       15 * time.Minute,
			ExtractDetail: true,
		})

	// Initialize and start scheduler
	interval := time.Duration(appCfg.CheckInterval) * time.Minute
	log.Printf("Starting scheduler, checking every %s...", interval)
	scheduler := tasks.NewScheduler(tasks.NewTask("news-check", interval, news))
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	apiHandler := api.NewHandler(changeRepo, postRepo, scheduler, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("News bot started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("News bot shutdown complete")
}

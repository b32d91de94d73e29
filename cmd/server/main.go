package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/10xdevs/flashgen/internal/api"
	"github.com/10xdevs/flashgen/internal/config"
	"github.com/10xdevs/flashgen/internal/core"
	"github.com/10xdevs/flashgen/internal/logger"
	"github.com/10xdevs/flashgen/internal/review"
	"github.com/10xdevs/flashgen/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dbStore, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("failed to initialize database", "error", err)
	}
	defer dbStore.Close()

	llmService, err := core.NewLLMService(context.Background(), cfg.GeminiAPIKey, cfg.AIModel, cfg.AITemperature, cfg.AIMaxTokens)
	if err != nil {
		zlog.Fatalw("failed to initialize LLM service", "error", err)
	}
	defer llmService.Close()

	generationService := core.NewGenerationService(dbStore, llmService, zlog)
	flashcardService := core.NewFlashcardService(dbStore, zlog)
	statsService := core.NewStatsService(dbStore)
	reviewManager := review.NewManager(flashcardService)

	apiHandler := api.NewAPIHandler(dbStore, generationService, flashcardService, statsService, reviewManager, cfg.JWTSecret, zlog)
	router := api.NewRouter(apiHandler, cfg.CORSOrigins)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Infow("starting server", "addr", serverAddr, "model", cfg.AIModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("could not listen", "addr", serverAddr, "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalw("server forced to shutdown", "error", err)
	}

	zlog.Infow("server exited gracefully")
}

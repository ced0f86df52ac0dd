package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicprime/notelens/config"
	"github.com/clinicprime/notelens/internal/catalog"
	httpDelivery "github.com/clinicprime/notelens/internal/delivery/http"
	"github.com/clinicprime/notelens/internal/domain"
	"github.com/clinicprime/notelens/internal/infrastructure/cache"
	"github.com/clinicprime/notelens/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Infow("Starting NoteLens",
		"version", httpDelivery.Version,
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
	)

	// An invalid catalog is a startup failure, never a per-note one
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalw("Failed to load rule catalog", "path", cfg.Catalog.Path, "error", err)
	}
	logger.Infow("Rule catalog loaded",
		"path", cfg.Catalog.Path,
		"brands", len(cat.Brands()),
		"services", len(cat.ServicePriority()),
	)

	// Initialize infrastructure dependencies
	var resultCache domain.ResultCache
	if cfg.Cache.Enabled {
		memoryCache := cache.NewMemoryCache(10 * time.Minute)
		defer memoryCache.Close()
		resultCache = memoryCache
		logger.Infow("Result cache enabled", "ttl", cfg.Cache.TTL)
	}

	// Initialize usecase layer
	resolver := usecase.NewResolver(cat, usecase.ResolverConfig{
		ProximityThreshold: cfg.Resolver.ProximityThreshold,
		Logger:             logger.Named("resolver"),
	})
	noteService := usecase.NewNoteService(resultCache, resolver, usecase.NoteServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Logger:   logger.Named("notes"),
	})
	batchService := usecase.NewBatchService(noteService, usecase.BatchConfig{
		Workers: cfg.Batch.Workers,
		Logger:  logger.Named("batch"),
	})

	handler := httpDelivery.NewHandler(noteService, batchService, cat, cfg.Resolver.SourceFields, logger.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
}

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

	"otoran/internal/config"
	"otoran/internal/database"
	"otoran/internal/digest"
	"otoran/internal/handlers"
	"otoran/internal/logger"
	"otoran/internal/middleware"
	"otoran/internal/repository"
	"otoran/internal/searchapi"
	"otoran/internal/service"
	"otoran/web"

	"github.com/gorilla/mux"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logging)
	appLogger := logger.Default()

	appLogger.Info("Starting otoran on port %d (env: %s)", cfg.Port, cfg.Environment)

	// Initialize database
	appLogger.Info("Initializing database: %s", cfg.DatabasePath)
	db, err := database.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	appLogger.Info("Database migrations completed successfully")

	viewRepo := repository.NewViewRepository(db, appLogger)

	// Search API client; the deadline bounds a single attempt, there are no retries
	searchClient := searchapi.NewClient(cfg.SearchAPI, &http.Client{Timeout: 10 * time.Second}, appLogger)

	// Initialize services
	digestService := service.NewDigestService(digest.DefaultCollections(), searchClient, viewRepo, appLogger)
	docService := service.NewDocumentService(web.DocsFS(), appLogger)

	templates, err := handlers.LoadTemplates(web.TemplatesFS())
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Initialize handlers
	handler := handlers.NewHandler(digestService, cfg, templates, web.StaticFS(), appLogger)
	docHandler := handlers.NewDocumentHandler(docService, templates, appLogger)

	// Setup router
	router := mux.NewRouter()

	docHandler.RegisterRoutes(router)
	handler.RegisterRoutes(router)

	middleware.Attach(router, middleware.AccessLog(appLogger, time.Second))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Received shutdown signal, initiating graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server shutdown completed successfully")
}

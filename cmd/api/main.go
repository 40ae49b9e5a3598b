package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/turboshop/parts_api/internal/config"
	"github.com/turboshop/parts_api/internal/handler"
	"github.com/turboshop/parts_api/internal/middleware"
	"github.com/turboshop/parts_api/internal/service"
	"github.com/turboshop/parts_api/pkg/partsapi"
)

// main is the application entrypoint for the TurboShop parts catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting parts api")

	// 3. Initialize upstream client and provider registry
	client := partsapi.NewClient(partsapi.Config{
		BaseURL:    cfg.Provider.BaseURL,
		Timeout:    cfg.Provider.Timeout,
		MaxRetries: cfg.Provider.MaxRetries,
		RetryDelay: cfg.Provider.RetryDelay,
	})
	registry := service.DefaultRegistry()
	log.Info().Int("providers", registry.Len()).Str("base_url", cfg.Provider.BaseURL).Msg("provider registry initialized")

	// 4. Initialize services
	catalogSvc := service.NewCatalogService(client, registry, cfg.Aggregate.Timeout)

	// 5. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Product: handler.NewProductHandler(catalogSvc),
	}

	// 6. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 7. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 8. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 9. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Catalog *handler.CatalogHandler
	Product *handler.ProductHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health.GetHealth)
		api.GET("/catalog", handlers.Catalog.GetCatalog)
		api.GET("/products/:sku", handlers.Product.GetProductBySKU)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

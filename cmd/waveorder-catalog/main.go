package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/api/handlers"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/api/middleware"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/cache"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/config"
	healthChecks "github.com/SnapFood-Technologies/waveorder-catalog/internal/health"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/metrics"
	repository "github.com/SnapFood-Technologies/waveorder-catalog/internal/repositories"
	service "github.com/SnapFood-Technologies/waveorder-catalog/internal/services"
	"github.com/SnapFood-Technologies/waveorder-catalog/pkg/sendGrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	businessCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	var alertMailer sendGrid.AlertMailer
	if cfg.SendGrid.APIKey != "" {
		alertMailer = sendGrid.NewAlertMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	catalogService := service.NewCatalogService(repos.Business, repos.Category, repos.Product, businessCache, cfg)
	eventLogger := service.NewEventLogger(repos.Event, alertMailer, cfg.SendGrid.AlertEmail)
	storefrontHandler := handlers.NewStorefrontHandler(catalogService, eventLogger, cfg.Catalog)

	healthHandler, err := healthChecks.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/storefront/{slug}", storefrontHandler.GetStore())
	routerMux.HandleFunc("GET /api/v1/storefront/{slug}/products", storefrontHandler.ListProducts())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

}

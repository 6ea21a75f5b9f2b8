// Package main is the entry point for the letterpress blog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letterpress/internal/config"
	"letterpress/internal/database"
	"letterpress/internal/handlers"
	"letterpress/internal/ratelimit"
	"letterpress/internal/render"
	"letterpress/internal/router"
	"letterpress/internal/service"
	"letterpress/internal/session"
	"letterpress/internal/store"
)

// Default rate limit thresholds, overridable at runtime through the
// configuracao table (rate_limit_<name>_max / rate_limit_<name>_minutos).
const (
	defaultArticleMax     = 20
	defaultArticleMinutes = 1

	defaultCategoryMax     = 10
	defaultCategoryMinutes = 1

	defaultLoginMax     = 5
	defaultLoginMinutes = 1
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis for sessions.
	redisClient, err := session.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	sessionStore := session.NewStore(redisClient)

	// Initialize the HTML template renderer.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	categoryStore := store.NewCategoryStore(db)
	settingStore := store.NewSettingStore(db)

	// Rate limiters read their thresholds from settings on every check.
	limits := ratelimit.NewRegistry(settingStore)
	defer limits.Stop()

	articleLimiter := limits.Limiter("artigos", defaultArticleMax, defaultArticleMinutes)
	categoryLimiter := limits.Limiter("admin_categorias", defaultCategoryMax, defaultCategoryMinutes)
	loginLimiter := limits.Limiter("login", defaultLoginMax, defaultLoginMinutes)

	// Workflow services.
	articleService := service.NewArticles(articleStore, categoryStore)
	categoryService := service.NewCategories(categoryStore, articleStore)

	// Handler groups.
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore, loginLimiter)
	articleHandlers := handlers.NewArticles(renderer, articleService, categoryService, articleLimiter)
	categoryHandlers := handlers.NewCategories(renderer, categoryService, categoryLimiter)
	publicHandlers := handlers.NewPublic(renderer, articleService)
	userHandlers := handlers.NewUsers(renderer, userStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, authHandlers, articleHandlers, categoryHandlers, publicHandlers, userHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

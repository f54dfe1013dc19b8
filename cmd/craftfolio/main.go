// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Craftfolio API server.
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

	"github.com/joho/godotenv"

	"craftfolio/internal/auth"
	"craftfolio/internal/cache"
	"craftfolio/internal/config"
	"craftfolio/internal/database"
	"craftfolio/internal/handlers"
	"craftfolio/internal/mailer"
	"craftfolio/internal/publish"
	"craftfolio/internal/router"
	"craftfolio/internal/store"
)

func main() {
	// Optional .env for local development. Ignored when absent.
	_ = godotenv.Load()

	// Structured logger: JSON in production, text in development.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

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

	// Connect to Valkey for the published-portfolio cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	portfolioCache := cache.NewPortfolioCache(valkeyClient, cache.DefaultPortfolioTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	portfolioStore := store.NewPortfolioStore(db)

	resolver := publish.NewResolver(portfolioStore, portfolioCache)
	tokens := auth.NewTokens(cfg.JWTSecret)

	// SMTP when configured, log-only otherwise.
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		slog.Info("smtp mailer configured", "host", cfg.SMTPHost)
	} else {
		mail = mailer.LogMailer{}
		slog.Warn("smtp not configured, password reset mail logged only")
	}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, portfolioStore, tokens, mail, cfg.FrontendURL)
	portfolioHandlers := handlers.NewPortfolios(portfolioStore, resolver)
	publicHandlers := handlers.NewPublic(portfolioStore, portfolioCache)
	adminHandlers := handlers.NewAdmin(userStore, portfolioStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Users:       userStore,
		Tokens:      tokens,
		Auth:        authHandlers,
		Portfolios:  portfolioHandlers,
		Public:      publicHandlers,
		Admin:       adminHandlers,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Create the HTTP server with sensible timeouts.
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

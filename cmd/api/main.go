package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamZoda/voiture/internal/auth"
	"github.com/AdamZoda/voiture/internal/config"
	"github.com/AdamZoda/voiture/internal/database"
	"github.com/AdamZoda/voiture/internal/handler"
	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/repository"
	"github.com/AdamZoda/voiture/internal/router"
	"github.com/AdamZoda/voiture/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting voiture storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool and schema
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	// Initialize auth primitives
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	passwords := auth.NewPasswordService(cfg.Auth.BcryptCost)

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, passwords, logger)

	// Bootstrap the first admin account when configured. Without it a
	// fresh database has no way to reach the guarded user endpoints.
	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if _, err := authService.SignUp(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			if !errors.Is(err, model.ErrUserExists) {
				return fmt.Errorf("failed to bootstrap admin account: %w", err)
			}
		} else {
			logger.Info().Str("email", cfg.Auth.AdminEmail).Msg("bootstrap admin account created")
		}
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, cfg.Store.WhatsAppNumber, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	authHandler := handler.NewAuthHandler(authService, tokens.TTL(), logger)

	// Initialize router
	mux := router.New(productHandler, categoryHandler, authHandler, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

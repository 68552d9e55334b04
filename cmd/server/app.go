package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fintally/account-api/internal/config"
	"github.com/fintally/account-api/internal/platform/postgres"
	"github.com/fintally/account-api/internal/service"
	"github.com/fintally/account-api/internal/service/auth"
	"github.com/fintally/account-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore        store.UserStore
	accountStore     store.AccountStore
	transactionStore store.TransactionStore

	// Service interfaces
	jwtService         auth.JWTService
	accountService     service.AccountService
	transactionService service.TransactionService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized")

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.accountStore = postgres.NewPostgresAccountStore(db, logger)
	app.transactionStore = postgres.NewPostgresTransactionStore(db, logger)

	// Initialize services
	app.accountService = service.NewAccountService(
		app.accountStore,
		app.userStore,
		db,
		logger,
	)
	app.transactionService = service.NewTransactionService(
		app.transactionStore,
		app.accountStore,
		app.userStore,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

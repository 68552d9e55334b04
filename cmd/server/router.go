package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fintally/account-api/internal/api"
	apiMiddleware "github.com/fintally/account-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	transactionHandler := api.NewTransactionHandler(app.transactionService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Account endpoints
		r.Post("/account", accountHandler.CreateAccount)
		r.Delete("/account", accountHandler.DeleteAccount)
		r.Get("/account", accountHandler.ListAccounts)

		// Transaction endpoints
		r.Post("/transaction/use", transactionHandler.UseBalance)
		r.Post("/transaction/cancel", transactionHandler.CancelBalance)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

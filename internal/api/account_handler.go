// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fintally/account-api/internal/api/shared"
	"github.com/fintally/account-api/internal/platform/logger"
	"github.com/fintally/account-api/internal/service"
	"github.com/go-playground/validator/v10"
)

// validate is the request validator shared by all handlers.
var validate = validator.New()

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}

	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// CreateAccount handles POST /account requests
// It creates a new account for the given user with the given initial balance.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateAccountRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	info, err := h.accountService.CreateAccount(r.Context(), req.UserID, req.InitialBalance)
	if err != nil {
		code, message := ErrorCodeAndMessage(err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "", code, message, err)
		return
	}

	log.Info("account created",
		slog.Int64("user_id", info.UserID),
		slog.String("account_number", info.AccountNumber))
	shared.RespondWithJSON(w, r, http.StatusOK, CreateAccountResponse{
		UserID:        info.UserID,
		AccountNumber: info.AccountNumber,
		RegisteredAt:  info.RegisteredAt,
	})
}

// DeleteAccount handles DELETE /account requests
// It unregisters the user's account. The account record itself survives as
// an audit trail; only its status changes.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeleteAccountRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	info, err := h.accountService.CloseAccount(r.Context(), req.UserID, req.AccountNumber)
	if err != nil {
		code, message := ErrorCodeAndMessage(err)
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), req.AccountNumber, code, message, err)
		return
	}

	log.Info("account unregistered",
		slog.Int64("user_id", info.UserID),
		slog.String("account_number", info.AccountNumber))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteAccountResponse{
		UserID:         info.UserID,
		AccountNumber:  info.AccountNumber,
		UnregisteredAt: info.UnregisteredAt,
	})
}

// ListAccounts handles GET /account?user_id= requests
// It returns every account owned by the user with its current balance.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	rawUserID := r.URL.Query().Get("user_id")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID <= 0 {
		log.Warn("invalid user_id query parameter", slog.String("user_id", rawUserID))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			service.ErrInvalidRequest.Code, "user_id must be a positive integer")
		return
	}

	infos, err := h.accountService.ListAccounts(r.Context(), userID)
	if err != nil {
		code, message := ErrorCodeAndMessage(err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "", code, message, err)
		return
	}

	response := make([]AccountInfoResponse, 0, len(infos))
	for _, info := range infos {
		response = append(response, AccountInfoResponse{
			AccountNumber: info.AccountNumber,
			Balance:       info.Balance,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// decodeAndValidate decodes the request body into dst and validates it.
// On failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, log *slog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			service.ErrInvalidRequest.Code, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			service.ErrInvalidRequest.Code, sanitizeValidationError(err))
		return false
	}

	return true
}

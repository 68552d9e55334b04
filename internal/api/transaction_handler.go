package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintally/account-api/internal/api/shared"
	"github.com/fintally/account-api/internal/platform/logger"
	"github.com/fintally/account-api/internal/service"
)

// TransactionHandler handles balance debit and reversal HTTP requests
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService service.TransactionService, logger *slog.Logger) *TransactionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TransactionHandler")
	}

	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger.With(slog.String("component", "transaction_handler")),
	}
}

// UseBalance handles POST /transaction/use requests
// On a business-rule rejection the failure itself is persisted as a FAIL
// transaction against the account before the error response is written.
func (h *TransactionHandler) UseBalance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UseBalanceRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.transactionService.UseBalance(r.Context(), req.UserID, req.AccountNumber, req.Amount)
	if err != nil {
		if shouldRecordFailure(err) {
			if saveErr := h.transactionService.SaveFailedUseTransaction(
				r.Context(), req.AccountNumber, req.Amount); saveErr != nil {
				log.Error("failed to record failed use transaction",
					slog.String("account_number", req.AccountNumber),
					slog.String("error", saveErr.Error()))
			}
		}

		code, message := ErrorCodeAndMessage(err)
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), req.AccountNumber, code, message, err)
		return
	}

	log.Info("balance used",
		slog.String("account_number", result.AccountNumber),
		slog.String("transaction_id", result.TransactionID),
		slog.Int64("amount", result.Amount))
	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		AccountNumber:     result.AccountNumber,
		TransactionResult: string(result.Result),
		TransactionID:     result.TransactionID,
		Amount:            result.Amount,
		TransactedAt:      result.TransactedAt,
	})
}

// CancelBalance handles POST /transaction/cancel requests
// Mirrors UseBalance: rejected reversals leave a CANCEL/FAIL record.
func (h *TransactionHandler) CancelBalance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CancelBalanceRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	result, err := h.transactionService.CancelBalance(r.Context(), req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		if shouldRecordFailure(err) {
			if saveErr := h.transactionService.SaveFailedCancelTransaction(
				r.Context(), req.AccountNumber, req.Amount); saveErr != nil {
				log.Error("failed to record failed cancel transaction",
					slog.String("account_number", req.AccountNumber),
					slog.String("error", saveErr.Error()))
			}
		}

		code, message := ErrorCodeAndMessage(err)
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), req.AccountNumber, code, message, err)
		return
	}

	log.Info("balance cancelled",
		slog.String("account_number", result.AccountNumber),
		slog.String("transaction_id", result.TransactionID),
		slog.Int64("amount", result.Amount))
	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		AccountNumber:     result.AccountNumber,
		TransactionResult: string(result.Result),
		TransactionID:     result.TransactionID,
		Amount:            result.Amount,
		TransactedAt:      result.TransactedAt,
	})
}

// shouldRecordFailure reports whether a rejected balance operation should be
// persisted as a FAIL transaction. Rejections where no usable account was
// resolved, and malformed requests, leave no record.
func shouldRecordFailure(err error) bool {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		return false
	}

	switch svcErr {
	case service.ErrUserNotFound, service.ErrAccountNotFound, service.ErrInvalidRequest:
		return false
	default:
		return true
	}
}

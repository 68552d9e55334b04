package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintally/account-api/internal/domain"
	"github.com/fintally/account-api/internal/service"
)

func TestTransactionHandler_UseBalance(t *testing.T) {
	t.Run("successful debit", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("UseBalance", mock.Anything, int64(1), "1000000000", int64(300)).
			Return(&service.TransactionResult{
				AccountNumber:   "1000000000",
				TransactionID:   "49a7dabe94114ad5a1bbea4a3c4e1a3b",
				Type:            domain.TransactionTypeUse,
				Result:          domain.TransactionResultSuccess,
				Amount:          300,
				BalanceSnapshot: 700,
				TransactedAt:    handlerTestTime,
			}, nil)

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 1, AccountNumber: "1000000000", Amount: 300})

		require.Equal(t, http.StatusOK, w.Code)

		var resp TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1000000000", resp.AccountNumber)
		assert.Equal(t, "S", resp.TransactionResult)
		assert.Equal(t, "49a7dabe94114ad5a1bbea4a3c4e1a3b", resp.TransactionID)
		assert.Equal(t, int64(300), resp.Amount)
		svc.AssertNotCalled(t, "SaveFailedUseTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("business rejection leaves a failure record", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("UseBalance", mock.Anything, int64(1), "1000000000", int64(500)).
			Return(nil, service.ErrAmountExceedBalance)
		svc.On("SaveFailedUseTransaction", mock.Anything, "1000000000", int64(500)).Return(nil)

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 1, AccountNumber: "1000000000", Amount: 500})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "AMOUNT_EXCEED_BALANCE", resp.ErrorCode)
		assert.Equal(t, "1000000000", resp.AccountNumber)
		svc.AssertCalled(t, "SaveFailedUseTransaction", mock.Anything, "1000000000", int64(500))
	})

	t.Run("unknown account leaves no failure record", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("UseBalance", mock.Anything, int64(1), "1999999999", int64(500)).
			Return(nil, service.ErrAccountNotFound)

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 1, AccountNumber: "1999999999", Amount: 500})

		require.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "SaveFailedUseTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user leaves no failure record", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("UseBalance", mock.Anything, int64(9), "1000000000", int64(500)).
			Return(nil, service.ErrUserNotFound)

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 9, AccountNumber: "1000000000", Amount: 500})

		require.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertNotCalled(t, "SaveFailedUseTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failure-record error is swallowed, original error wins", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("UseBalance", mock.Anything, int64(1), "1000000000", int64(500)).
			Return(nil, service.ErrAccountNotInUse)
		svc.On("SaveFailedUseTransaction", mock.Anything, "1000000000", int64(500)).
			Return(assert.AnError)

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 1, AccountNumber: "1000000000", Amount: 500})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "ACCOUNT_NOT_IN_USE", resp.ErrorCode)
	})

	t.Run("amount above the cap fails validation", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		w := doJSON(t, handler.UseBalance, http.MethodPost, "/transaction/use",
			UseBalanceRequest{UserID: 1, AccountNumber: "1000000000", Amount: 1000000001})

		require.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UseBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		svc.AssertNotCalled(t, "SaveFailedUseTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionHandler_CancelBalance(t *testing.T) {
	t.Run("successful reversal", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("CancelBalance", mock.Anything, "49a7dabe94114ad5a1bbea4a3c4e1a3b", "1000000000", int64(300)).
			Return(&service.TransactionResult{
				AccountNumber:   "1000000000",
				TransactionID:   "aa10233f5a1c4e6dbb1dfc0e6f2ab111",
				Type:            domain.TransactionTypeCancel,
				Result:          domain.TransactionResultSuccess,
				Amount:          300,
				BalanceSnapshot: 1000,
				TransactedAt:    handlerTestTime,
			}, nil)

		w := doJSON(t, handler.CancelBalance, http.MethodPost, "/transaction/cancel",
			CancelBalanceRequest{
				TransactionID: "49a7dabe94114ad5a1bbea4a3c4e1a3b",
				AccountNumber: "1000000000",
				Amount:        300,
			})

		require.Equal(t, http.StatusOK, w.Code)

		var resp TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "S", resp.TransactionResult)
		assert.Equal(t, "aa10233f5a1c4e6dbb1dfc0e6f2ab111", resp.TransactionID)
	})

	t.Run("partial reversal leaves a failure record", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("CancelBalance", mock.Anything, "49a7dabe94114ad5a1bbea4a3c4e1a3b", "1000000000", int64(200)).
			Return(nil, service.ErrCancelMustFully)
		svc.On("SaveFailedCancelTransaction", mock.Anything, "1000000000", int64(200)).Return(nil)

		w := doJSON(t, handler.CancelBalance, http.MethodPost, "/transaction/cancel",
			CancelBalanceRequest{
				TransactionID: "49a7dabe94114ad5a1bbea4a3c4e1a3b",
				AccountNumber: "1000000000",
				Amount:        200,
			})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "CANCEL_MUST_FULLY", resp.ErrorCode)
		svc.AssertCalled(t, "SaveFailedCancelTransaction", mock.Anything, "1000000000", int64(200))
	})

	t.Run("too old transaction leaves a failure record", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		svc.On("CancelBalance", mock.Anything, "49a7dabe94114ad5a1bbea4a3c4e1a3b", "1000000000", int64(300)).
			Return(nil, service.ErrTooOldOrderToCancel)
		svc.On("SaveFailedCancelTransaction", mock.Anything, "1000000000", int64(300)).Return(nil)

		w := doJSON(t, handler.CancelBalance, http.MethodPost, "/transaction/cancel",
			CancelBalanceRequest{
				TransactionID: "49a7dabe94114ad5a1bbea4a3c4e1a3b",
				AccountNumber: "1000000000",
				Amount:        300,
			})

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "TOO_OLD_ORDER_TO_CANCEL", resp.ErrorCode)
	})

	t.Run("missing transaction_id fails validation", func(t *testing.T) {
		svc := new(mockTransactionService)
		handler := NewTransactionHandler(svc, slog.Default())

		w := doJSON(t, handler.CancelBalance, http.MethodPost, "/transaction/cancel",
			CancelBalanceRequest{AccountNumber: "1000000000", Amount: 300})

		require.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CancelBalance",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

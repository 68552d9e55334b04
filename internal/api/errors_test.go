package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintally/account-api/internal/service"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"account not found", service.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", service.ErrTransactionNotFound, http.StatusNotFound},
		{"ownership mismatch", service.ErrUserAccountUnmatch, http.StatusForbidden},
		{"account cap", service.ErrMaxAccountPerUser, http.StatusBadRequest},
		{"balance exceeded", service.ErrAmountExceedBalance, http.StatusBadRequest},
		{"partial cancel", service.ErrCancelMustFully, http.StatusBadRequest},
		{"invalid request", service.ErrInvalidRequest, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped business error", fmt.Errorf("context: %w", service.ErrBalanceNotEmpty), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestErrorCodeAndMessage(t *testing.T) {
	t.Run("business error exposes its own code", func(t *testing.T) {
		code, message := ErrorCodeAndMessage(service.ErrTooOldOrderToCancel)
		assert.Equal(t, "TOO_OLD_ORDER_TO_CANCEL", code)
		assert.Equal(t, service.ErrTooOldOrderToCancel.Message, message)
	})

	t.Run("wrapped business error is unwrapped", func(t *testing.T) {
		code, _ := ErrorCodeAndMessage(fmt.Errorf("context: %w", service.ErrUserNotFound))
		assert.Equal(t, "USER_NOT_FOUND", code)
	})

	t.Run("internal errors are sanitized", func(t *testing.T) {
		code, message := ErrorCodeAndMessage(errors.New("pq: relation accounts does not exist"))
		assert.Equal(t, "INTERNAL_SERVER_ERROR", code)
		assert.NotContains(t, message, "accounts")
	})
}

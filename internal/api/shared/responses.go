package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fintally/account-api/internal/redact"
)

// ErrorResponse defines the standard error response structure. The same
// payload shape is used in both directions: account number (when one is in
// play), stable error code, and human-readable message.
type ErrorResponse struct {
	AccountNumber string `json:"account_number,omitempty"`
	ErrorCode     string `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
	TraceID       string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code,
// error code and message. It also sets the TraceID from the request context
// if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	RespondWithBusinessError(w, r, status, "", code, message)
}

// RespondWithBusinessError writes a JSON error response carrying the account
// number the failure relates to, when one is known.
func RespondWithBusinessError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	accountNumber, code, message string,
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		AccountNumber: accountNumber,
		ErrorCode:     code,
		ErrorMessage:  message,
		TraceID:       traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"error_code", code,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// This is useful for handling errors where you want to log the full error but only
// expose a sanitized version to the client.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - 4xx errors: logged at DEBUG level (business rejections are expected traffic)
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	accountNumber, code, userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	// Only the safe code and message go to the client; the raw error string
	// stays in the logs, redacted.
	errorResponse := ErrorResponse{
		AccountNumber: accountNumber,
		ErrorCode:     code,
		ErrorMessage:  userMessage,
		TraceID:       traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", redact.Error(err)))
		logAttrs = append(logAttrs, slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, errorResponse)
}

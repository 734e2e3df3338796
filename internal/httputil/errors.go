package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jrschumacher/casting-agency/internal/auth"
	"github.com/jrschumacher/casting-agency/internal/logger"
)

// ErrorResponse is the body of every non-authorization error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// AuthErrorResponse is the body of every authorization error.
type AuthErrorResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Resource not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable entity",
	http.StatusInternalServerError: "Internal server error",
	http.StatusServiceUnavailable:  "Service unavailable",
}

// StatusMessage returns the fixed message sent for status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// WriteError writes {success:false, error:status, message} and logs the failure.
func WriteError(w http.ResponseWriter, status int, logFields ...any) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: StatusMessage(status),
	})

	logFields = append([]any{"status", status}, logFields...)
	if status >= http.StatusInternalServerError {
		logger.Error("HTTP error response", logFields...)
		return
	}
	logger.Warn("HTTP error response", logFields...)
}

// WriteInternalError writes a generic 500 and logs err. Nothing about err reaches the client.
func WriteInternalError(w http.ResponseWriter, err error, logFields ...any) {
	WriteError(w, http.StatusInternalServerError, append([]any{"error", err}, logFields...)...)
}

// WriteAuthError serializes an authorization failure as {code, description}.
func WriteAuthError(w http.ResponseWriter, err *auth.Error, logFields ...any) {
	WriteJSON(w, err.Status, AuthErrorResponse{
		Code:        err.Code,
		Description: err.Description,
	})

	logFields = append([]any{"status", err.Status, "kind", err.Kind.String(), "code", err.Code, "error", err}, logFields...)
	logger.Warn("Authorization failed", logFields...)
}

// WriteJSON writes a JSON response with proper error handling
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// WriteCreated writes a 201 Created response with JSON data
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteSuccess writes a 200 OK response with JSON data
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

var (
	// ErrMalformedBody is returned for empty or syntactically invalid JSON.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrUnprocessableBody is returned for well-formed JSON of the wrong shape.
	ErrUnprocessableBody = errors.New("unprocessable request body")
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes a single JSON object from r's body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: %w", ErrUnprocessableBody, err)
		default:
			return fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", ErrMalformedBody)
	}
	return nil
}

// DecodeStatus maps a DecodeJSON error to its HTTP status.
func DecodeStatus(err error) int {
	if errors.Is(err, ErrUnprocessableBody) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

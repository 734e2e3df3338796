package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrschumacher/casting-agency/internal/auth"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "Bad request"},
		{http.StatusNotFound, "Resource not found"},
		{http.StatusMethodNotAllowed, "Method not allowed"},
		{http.StatusUnprocessableEntity, "Unprocessable entity"},
		{http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.status)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body map[string]any
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["error"] != float64(tt.status) {
				t.Errorf("error = %v, want %d", body["error"], tt.status)
			}
			if body["message"] != tt.message {
				t.Errorf("message = %v, want %q", body["message"], tt.message)
			}
		})
	}
}

func TestWriteInternalErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	WriteInternalError(w, errors.New("pq: password authentication failed"))

	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("response leaked error detail: %s", w.Body.String())
	}
}

func TestWriteAuthError(t *testing.T) {
	_, err := auth.ExtractToken("")
	authErr, ok := auth.AsError(err)
	if !ok {
		t.Fatalf("expected *auth.Error, got %T", err)
	}

	w := httptest.NewRecorder()
	WriteAuthError(w, authErr)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 2 {
		t.Errorf("expected exactly code and description, got %v", body)
	}
	if body["code"] != "authorization_header_missing" {
		t.Errorf("code = %q", body["code"])
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int32  `json:"age"`
	}

	tests := []struct {
		name       string
		body       string
		wantErr    error
		wantStatus int
	}{
		{"valid", `{"name":"Ada","age":30}`, nil, 0},
		{"empty body", ``, ErrMalformedBody, http.StatusBadRequest},
		{"syntax error", `{"name":`, ErrMalformedBody, http.StatusBadRequest},
		{"not json", `name=Ada`, ErrMalformedBody, http.StatusBadRequest},
		{"wrong type", `{"age":"thirty"}`, ErrUnprocessableBody, http.StatusUnprocessableEntity},
		{"trailing data", `{"name":"Ada"} {"name":"Bob"}`, ErrMalformedBody, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("DecodeJSON() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeJSON() error = %v, want %v", err, tt.wantErr)
			}
			if got := DecodeStatus(err); got != tt.wantStatus {
				t.Errorf("DecodeStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cipherloom-go/internal/errors"
)

// TestRespondError tests error response helper
func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{
			name:       "bad request",
			err:        errors.NewBadRequest("invalid input"),
			wantStatus: http.StatusBadRequest,
			wantCode:   400,
		},
		{
			name:       "not found",
			err:        errors.NewNotFound("resource not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   404,
		},
		{
			name:       "key shape",
			err:        errors.NewInvalidKeyShape("key length 5 is not a square", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   421,
		},
		{
			name:       "unknown cipher",
			err:        errors.NewUnknownCipher("enigma"),
			wantStatus: http.StatusNotFound,
			wantCode:   424,
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("running job: %w", errors.NewInvalidKey("key has no letters")),
			wantStatus: http.StatusBadRequest,
			wantCode:   420,
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondError(w, zerolog.Nop(), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}

			if resp.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", resp.Code, tt.wantCode)
			}
			if resp.Msg == "" {
				t.Error("msg should not be empty")
			}
		})
	}
}

// TestRespondSuccess tests success response helper
func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}
	RespondSuccess(w, data)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Code != 0 {
		t.Errorf("code = %d, want 0", resp.Code)
	}
	if resp.Msg != "" {
		t.Errorf("msg = %q, want empty", resp.Msg)
	}
}

// TestRespondJSON tests raw JSON response helper
func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]int{"count": 42})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}

	var data map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if data["count"] != 42 {
		t.Errorf("count = %d, want 42", data["count"])
	}
}

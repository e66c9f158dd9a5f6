package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	rh := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))

	var syntaxErr error
	if err := json.Unmarshal([]byte("not-json"), new(map[string]any)); err != nil {
		syntaxErr = err
	}

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", errs.NewValidationError("question is required"), http.StatusBadRequest, "invalid_input"},
		{"wrapped validation", fmt.Errorf("ask: %w", errs.NewValidationError("x")), http.StatusBadRequest, "invalid_input"},
		{"json syntax", syntaxErr, http.StatusBadRequest, "invalid_input"},
		{"body too large", &http.MaxBytesError{Limit: 16}, http.StatusRequestEntityTooLarge, "too_large"},
		{"conflict", errs.NewConflictError("busy"), http.StatusConflict, "busy"},
		{"not found", errs.NewNotFoundError("missing"), http.StatusNotFound, "not_found"},
		{"read only", errs.NewReadOnlyError("builtin"), http.StatusMethodNotAllowed, "read_only"},
		{"database", errs.NewDatabaseError("write", "save content", errors.New("x")), http.StatusInternalServerError, "internal_error"},
		{"external transient", errs.NewExternalServiceError("vertex", 503, true, errors.New("x")), http.StatusServiceUnavailable, "service_unavailable"},
		{"external", errs.NewExternalServiceError("vertex", 400, false, errors.New("x")), http.StatusBadGateway, "service_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			rh.HandleError(rr, req, tc.err)

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rh := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	rh.WriteSuccess(rr, req, http.StatusOK, map[string]string{"message": "hi"})

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data["message"] != "hi" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

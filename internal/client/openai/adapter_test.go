package openaiclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/GregMSThompson/gwamegi-riders/internal/dto"
	"github.com/GregMSThompson/gwamegi-riders/internal/errs"
	"github.com/GregMSThompson/gwamegi-riders/pkg/helpers"
)

type capturedRequest struct {
	Auth     string
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type recorder struct {
	mu    sync.Mutex
	calls int
	last  capturedRequest
}

func (r *recorder) snapshot() (int, capturedRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, r.last
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var captured capturedRequest
		_ = json.Unmarshal(raw, &captured)
		captured.Auth = r.Header.Get("Authorization")

		rec.mu.Lock()
		rec.calls++
		rec.last = captured
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1760000000,
	"model": "test-model",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "Try Homigot coastal road!"}
	}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestGenerateSuccess(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, completionBody)

	a := NewAdapter(srv.URL+"/", "test-model")
	text, err := a.Generate(helpers.TestCtx(), "key-123", dto.GenerateRequest{
		System:      "persona",
		UserMessage: "recommend a coastal route",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "Try Homigot coastal road!" {
		t.Fatalf("text = %q", text)
	}
	calls, captured := rec.snapshot()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if captured.Auth != "Bearer key-123" {
		t.Fatalf("authorization = %q", captured.Auth)
	}
	if captured.Model != "test-model" {
		t.Fatalf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "recommend a coastal route" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestGenerateServerErrorDoesNotRetry(t *testing.T) {
	srv, rec := newServer(t, http.StatusServiceUnavailable, `{"error":{"message":"overloaded","type":"server_error"}}`)

	a := NewAdapter(srv.URL+"/", "test-model")
	_, err := a.Generate(helpers.TestCtx(), "key", dto.GenerateRequest{UserMessage: "hi"})

	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %T: %v", err, err)
	}
	if ext.StatusCode != http.StatusServiceUnavailable || !ext.Transient {
		t.Fatalf("unexpected mapping: %+v", ext)
	}
	if calls, _ := rec.snapshot(); calls != 1 {
		t.Fatalf("calls = %d, want exactly 1 (no retry)", calls)
	}
}

func TestGenerateClientErrorIsPermanent(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)

	a := NewAdapter(srv.URL+"/", "test-model")
	_, err := a.Generate(helpers.TestCtx(), "key", dto.GenerateRequest{UserMessage: "hi"})

	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || ext.Transient || ext.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateNoChoicesIsMalformed(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)

	a := NewAdapter(srv.URL+"/", "test-model")
	_, err := a.Generate(helpers.TestCtx(), "key", dto.GenerateRequest{UserMessage: "hi"})
	if !errs.Is[*errs.MalformedResponseError](err) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestGenerateRequiresContent(t *testing.T) {
	a := NewAdapter("http://127.0.0.1:0/", "test-model")
	if _, err := a.Generate(helpers.TestCtx(), "key", dto.GenerateRequest{}); err == nil {
		t.Fatalf("expected error for empty request")
	}
}

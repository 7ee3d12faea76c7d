package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"chat-relay/internal/models"
	"chat-relay/internal/services"
)

type stubChatService struct {
	reply string
	err   error

	called bool
	got    models.ChatRequest
}

func (s *stubChatService) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	s.called = true
	s.got = req
	return s.reply, s.err
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

// ─── Chat Handler Tests ───

func TestChatHandler_Success(t *testing.T) {
	svc := &stubChatService{reply: "Hello world"}
	h := NewChatHandler(svc)

	rr := postChat(t, h, `{"api_key":"k","prompt":"hi","history":[{"role":"user","text":"a"},{"role":"assistant","text":"b"}]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}
	out := decodeBody[models.ChatResponse](t, rr)
	if out.Response != "Hello world" {
		t.Errorf("expected response %q, got %q", "Hello world", out.Response)
	}
	if len(svc.got.History) != 2 || svc.got.History[1].Role != "assistant" {
		t.Errorf("history not forwarded: %+v", svc.got.History)
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	svc := &stubChatService{}
	h := NewChatHandler(svc)

	rr := postChat(t, h, `not-json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if svc.called {
		t.Fatalf("service should not be called for an invalid body")
	}
	out := decodeBody[models.ErrorResponse](t, rr)
	if out.Error != "Invalid request body" {
		t.Errorf("unexpected error message %q", out.Error)
	}
}

func TestChatHandler_MapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     &services.ValidationError{Message: "API key and prompt are required"},
			status:  http.StatusBadRequest,
			message: "API key and prompt are required",
		},
		{
			name:    "upstream",
			err:     &services.UpstreamError{StatusCode: 403, Body: `{"error":"forbidden"}`},
			status:  http.StatusInternalServerError,
			message: `Request failed with status code 403: {"error":"forbidden"}`,
		},
		{
			name:    "empty",
			err:     &services.EmptyResponseError{},
			status:  http.StatusInternalServerError,
			message: "No generated text found in response.",
		},
		{
			name:    "transport",
			err:     &services.TransportError{Err: errors.New("connection refused")},
			status:  http.StatusInternalServerError,
			message: "Error during API call: connection refused",
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{err: tc.err})

			rr := postChat(t, h, `{"api_key":"k","prompt":"p"}`)

			if rr.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rr.Code)
			}
			out := decodeBody[models.ErrorResponse](t, rr)
			if out.Error != tc.message {
				t.Errorf("expected error %q, got %q", tc.message, out.Error)
			}
		})
	}
}

// ─── Page Handler Tests ───

func testSite() fstest.MapFS {
	return fstest.MapFS{
		"index.html":       {Data: []byte("<html><body>chat</body></html>")},
		"static/script.js": {Data: []byte("console.log('hi');")},
	}
}

func TestPageHandler_Index(t *testing.T) {
	h, err := NewPageHandler(testSite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected HTML content type, got %q", rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(rr.Body.String(), "chat") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestPageHandler_Static(t *testing.T) {
	h, err := NewPageHandler(testSite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	h.Static(rr, httptest.NewRequest(http.MethodGet, "/static/script.js", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if string(body) != "console.log('hi');" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestNewPageHandler_MissingIndex(t *testing.T) {
	if _, err := NewPageHandler(fstest.MapFS{}); err == nil {
		t.Fatal("expected error when index.html is missing")
	}
}

// ─── JSON Response Tests ───

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	result := decodeBody[map[string]string](t, rr)
	if result["status"] != "ok" {
		t.Errorf("expected status ok, got %v", result["status"])
	}
}

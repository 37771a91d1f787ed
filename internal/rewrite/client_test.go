package rewrite

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewHTTPFeatureDetection(t *testing.T) {
	if _, ok := NewHTTP(Config{}); ok {
		t.Fatalf("empty config must not enable the client")
	}
	if _, ok := NewHTTP(Config{Endpoint: "https://api.example.com/v1/chat"}); ok {
		t.Fatalf("endpoint without key must not enable the client")
	}
	if _, ok := NewHTTP(Config{APIKey: "sk-test"}); ok {
		t.Fatalf("key without endpoint must not enable the client")
	}
	client, ok := NewHTTP(Config{Endpoint: "https://api.example.com/v1/chat", APIKey: "sk-test"})
	if !ok || client == nil {
		t.Fatalf("full config must enable the client")
	}
}

func TestRewriteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "  rewritten text  "}},
			},
		})
	}))
	defer srv.Close()

	client, ok := NewHTTP(Config{Endpoint: srv.URL, APIKey: "sk-test", Model: "test-model"})
	if !ok {
		t.Fatalf("client should be enabled")
	}

	got, err := client.Rewrite(context.Background(), "make this sound human")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if got != "rewritten text" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
}

func TestRewriteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := NewHTTP(Config{Endpoint: srv.URL, APIKey: "sk-test"})
	_, err := client.Rewrite(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry the status code, got %v", err)
	}
}

func TestRewriteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, _ := NewHTTP(Config{Endpoint: srv.URL, APIKey: "sk-test"})
	if _, err := client.Rewrite(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestRewriteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background connection-close
		// read; otherwise the client's disconnect is never detected and the
		// request context only cancels when the handler returns.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, _ := NewHTTP(Config{Endpoint: srv.URL, APIKey: "sk-test"})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Rewrite(ctx, "prompt"); err == nil {
		t.Fatalf("expected context deadline error")
	}
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lanka-news/internal/config"
)

func chatOK(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}
}

func remoteFor(url string) Client {
	return NewClient(config.LLMConfig{
		Provider: "openrouter",
		BaseURL:  url,
		Model:    "test-model",
		APIKey:   "test-key",
	})
}

func localFor(url string) Client {
	return NewClient(config.LLMConfig{
		Provider: "local",
		BaseURL:  url,
		Model:    "test-model",
	})
}

func TestRemoteNotConfigured(t *testing.T) {
	client := NewClient(config.LLMConfig{Provider: "openrouter", BaseURL: "http://localhost:1"})
	_, err := client.Complete(context.Background(), "hi", Options{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteReturnsContent(t *testing.T) {
	srv := httptest.NewServer(chatOK("hello"))
	defer srv.Close()

	got, err := remoteFor(srv.URL).Complete(context.Background(), "hi", Options{})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestCompleteSendsBearerAndEndpoint(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		chatOK("ok")(w, r)
	}))
	defer srv.Close()

	if _, err := remoteFor(srv.URL).Complete(context.Background(), "hi", Options{}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
}

// A provider error inside a 200 body is a hard failure, never swallowed.
func TestCompleteErrorFieldIn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer srv.Close()

	_, err := remoteFor(srv.URL).Complete(context.Background(), "hi", Options{})
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !strings.Contains(provErr.Message, "model overloaded") {
		t.Errorf("message = %q", provErr.Message)
	}
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := remoteFor(srv.URL).Complete(context.Background(), "hi", Options{})
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d", provErr.Status)
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		chatOK("late")(w, r)
	}))
	defer srv.Close()

	_, err := remoteFor(srv.URL).Complete(context.Background(), "hi", Options{Timeout: 50 * time.Millisecond})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

// The local branch prepends the no-think directive to the request and can
// ask for structured output; neither decoration exists on the remote branch.
func TestLocalBranchRequestShape(t *testing.T) {
	var body chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		chatOK("ok")(w, r)
	}))
	defer srv.Close()

	if _, err := localFor(srv.URL).Complete(context.Background(), "analyze this", Options{JSONMode: true}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("messages = %d", len(body.Messages))
	}
	if !strings.HasPrefix(body.Messages[0].Content, noThinkDirective) {
		t.Errorf("prompt missing directive: %q", body.Messages[0].Content)
	}
	if !strings.Contains(body.Messages[0].Content, "analyze this") {
		t.Errorf("prompt missing user content: %q", body.Messages[0].Content)
	}
	if body.ResponseFormat == nil || body.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", body.ResponseFormat)
	}
}

func TestRemoteBranchHasNoDirective(t *testing.T) {
	var body chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		chatOK("ok")(w, r)
	}))
	defer srv.Close()

	if _, err := remoteFor(srv.URL).Complete(context.Background(), "analyze this", Options{JSONMode: true}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if strings.Contains(body.Messages[0].Content, noThinkDirective) {
		t.Errorf("remote prompt carries local directive: %q", body.Messages[0].Content)
	}
	if body.ResponseFormat != nil {
		t.Errorf("remote branch set response_format: %+v", body.ResponseFormat)
	}
}

// Package llm fronts the completion and embedding providers behind small
// interfaces. Both strategies speak the OpenAI-compatible chat API; they
// differ only in endpoint, default timeout and request decoration, and
// share one timeout-wrapped POST path.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"lanka-news/internal/config"
)

// ErrTimeout is returned when a provider call exceeds its budget. The
// in-flight request is aborted with it; callers treat it as a per-item
// failure and move on.
var ErrTimeout = errors.New("llm request timed out")

// ErrNotConfigured is returned when no credential is available for a
// provider that requires one.
var ErrNotConfigured = errors.New("llm provider not configured")

// ProviderError is a hard failure reported by the provider, either a
// non-2xx status or an error field inside an otherwise-200 body.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.Status, e.Message)
}

// Default timeouts per branch. Local models run much slower than the
// hosted ones, hence the wider local budget.
const (
	remoteTimeout = 120 * time.Second
	localTimeout  = 300 * time.Second
)

// Directive prepended to local-branch prompts so reasoning-capable local
// models skip chain-of-thought emission. Request side only; responses are
// additionally cleaned by CleanResponse.
const noThinkDirective = "/no_think"

// Options control a single completion call. Zero values fall back to the
// strategy's defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Timeout     time.Duration
}

// Client produces a completion for a prompt.
type Client interface {
	// Complete sends the prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	// Configured reports whether the provider can be called at all.
	Configured() bool
}

// NewClient builds the strategy selected by configuration.
func NewClient(cfg config.LLMConfig) Client {
	if cfg.Provider == "local" {
		return &localClient{cfg: cfg, http: &http.Client{}}
	}
	return &remoteClient{cfg: cfg, http: &http.Client{}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// doChat posts a chat completion and decodes the envelope. Every request
// runs inside a cancellation scope bound to the timeout, so a stuck
// provider aborts the connection instead of leaking it.
func doChat(ctx context.Context, client *http.Client, baseURL, apiKey string, payload chatRequest, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{Status: resp.StatusCode, Message: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// Some providers report failures with a 200 status and an error field;
	// that is still a hard failure, never swallowed.
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", &ProviderError{Status: resp.StatusCode, Message: parsed.Error.Message}
	}

	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Status: resp.StatusCode, Message: "no choices in response"}
	}

	return parsed.Choices[0].Message.Content, nil
}

// remoteClient talks to the hosted OpenRouter endpoint.
type remoteClient struct {
	cfg  config.LLMConfig
	http *http.Client
}

func (c *remoteClient) Configured() bool {
	return c.cfg.APIKey != ""
}

func (c *remoteClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = remoteTimeout
	}
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	return doChat(ctx, c.http, c.cfg.BaseURL, c.cfg.APIKey, payload, timeout)
}

// localClient talks to an OpenAI-compatible local backend.
type localClient struct {
	cfg  config.LLMConfig
	http *http.Client
}

func (c *localClient) Configured() bool {
	// Local backends run without credentials.
	return c.cfg.BaseURL != ""
}

func (c *localClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = localTimeout
	}
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: noThinkDirective + "\n" + prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return doChat(ctx, c.http, c.cfg.BaseURL, c.cfg.APIKey, payload, timeout)
}

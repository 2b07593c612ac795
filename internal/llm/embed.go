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

const embedTimeout = 60 * time.Second

// Embedder generates embedding vectors from an OpenAI-compatible
// /embeddings endpoint.
type Embedder struct {
	cfg  config.EmbeddingConfig
	http *http.Client
}

// NewEmbedder creates an embedder from configuration
func NewEmbedder(cfg config.EmbeddingConfig) *Embedder {
	return &Embedder{cfg: cfg, http: &http.Client{}}
}

// Dimensions returns the vector size the active backend produces.
func (e *Embedder) Dimensions() int {
	return e.cfg.Dimensions
}

type embedRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed returns the embedding vector for the given text. The bearer
// header is only sent when a credential is configured; local backends
// accept unauthenticated requests.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	data, err := json.Marshal(embedRequest{
		Model:      e.cfg.Model,
		Input:      text,
		Dimensions: e.cfg.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.cfg.BaseURL+"/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, embedTimeout)
		}
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Status: resp.StatusCode, Message: string(body)}
	}

	var parsed embedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, &ProviderError{Status: resp.StatusCode, Message: parsed.Error.Message}
	}
	if len(parsed.Data) == 0 {
		return nil, &ProviderError{Status: resp.StatusCode, Message: "no embedding in response"}
	}

	return parsed.Data[0].Embedding, nil
}

package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lanka-news/internal/llm"
	"lanka-news/internal/models"
)

// ErrNoArticles is returned when there is no coverage to summarize from.
var ErrNoArticles = errors.New("no articles to summarize")

// ErrSummaryTooShort is returned when the model produced something too
// thin to cache.
var ErrSummaryTooShort = errors.New("generated summary too short")

const (
	personSummaryTimeout = 30 * time.Second
	personContextLimit   = 15
	minSummaryLength     = 30
)

// GetOrGeneratePersonSummary returns a biography for a person tag,
// generating and caching one on a miss.
//
// The external contract is graceful degradation: page callers collapse
// every error here into "no summary" and render without one. The typed
// errors exist so internal callers can still tell "nothing to summarize"
// from "the provider failed".
//
// Cache rule: a description longer than 50 characters is an earlier
// generation and is returned as-is without any model call.
func (e *Enricher) GetOrGeneratePersonSummary(ctx context.Context, tag *models.Tag, articles []models.Article) (string, error) {
	if tag.HasGeneratedSummary() {
		return tag.Description, nil
	}
	if len(articles) == 0 {
		return "", ErrNoArticles
	}
	if e.client == nil || !e.client.Configured() {
		return "", llm.ErrNotConfigured
	}

	prompt := PersonSummaryPrompt(tag.Name, personContext(articles))

	// One attempt with a hard budget; a slow provider must not hold up a
	// page render, and there is no retry.
	raw, err := e.client.Complete(ctx, prompt, llm.Options{
		Temperature: 0.4,
		MaxTokens:   512,
		Timeout:     personSummaryTimeout,
	})
	if err != nil {
		return "", fmt.Errorf("generating summary for %q: %w", tag.Slug, err)
	}

	summary := strings.TrimSpace(llm.CleanResponse(raw))
	if len(summary) <= minSummaryLength {
		return "", ErrSummaryTooShort
	}

	if err := e.db.Model(&models.Tag{}).Where("id = ?", tag.ID).
		Update("description", summary).Error; err != nil {
		return "", fmt.Errorf("caching summary for %q: %w", tag.Slug, err)
	}
	tag.Description = summary

	return summary, nil
}

// personContext renders a numbered digest of up to the first 15 articles:
// date, title, and summary (falling back to excerpt).
func personContext(articles []models.Article) string {
	if len(articles) > personContextLimit {
		articles = articles[:personContextLimit]
	}
	var b strings.Builder
	for i, a := range articles {
		date := "unknown date"
		if a.PublishedAt != nil {
			date = a.PublishedAt.Format("2006-01-02")
		}
		body := a.Summary
		if body == "" {
			body = a.Excerpt
		}
		fmt.Fprintf(&b, "%d. [%s] %s - %s\n", i+1, date, a.Title, body)
	}
	return b.String()
}

package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lanka-news/internal/llm"
	"lanka-news/internal/models"

	"github.com/google/uuid"
)

func personTag(description string) *models.Tag {
	return &models.Tag{
		ID:          uuid.New(),
		Slug:        "test-person",
		Name:        "Test Person",
		Type:        models.TagPerson,
		Description: description,
	}
}

func someArticles(n int) []models.Article {
	published := time.Now()
	articles := make([]models.Article, n)
	for i := range articles {
		articles[i] = models.Article{
			Title:       "Coverage item",
			Summary:     "Something happened.",
			PublishedAt: &published,
		}
	}
	return articles
}

func TestPersonSummaryCacheHit(t *testing.T) {
	db := setupTestDB(t)
	client := &fakeLLM{response: "should never be called", configured: true}
	enricher := NewEnricher(db, client, nil)

	cached := strings.Repeat("x", 51)
	tag := personTag(cached)

	got, err := enricher.GetOrGeneratePersonSummary(context.Background(), tag, someArticles(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cached {
		t.Errorf("cache hit returned %q", got)
	}
	if client.calls != 0 {
		t.Errorf("cache hit issued %d model calls", client.calls)
	}
}

func TestPersonSummaryNoArticles(t *testing.T) {
	db := setupTestDB(t)
	client := &fakeLLM{configured: true}
	enricher := NewEnricher(db, client, nil)

	// 50 characters is not a cache hit; with no articles there is
	// nothing to generate from.
	tag := personTag(strings.Repeat("x", 50))

	_, err := enricher.GetOrGeneratePersonSummary(context.Background(), tag, nil)
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("issued %d model calls", client.calls)
	}
}

func TestPersonSummaryNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	enricher := NewEnricher(db, &fakeLLM{configured: false}, nil)

	_, err := enricher.GetOrGeneratePersonSummary(context.Background(), personTag(""), someArticles(1))
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestPersonSummaryGeneratesAndCaches(t *testing.T) {
	db := setupTestDB(t)
	summary := strings.Repeat("A political figure covered extensively. ", 5)
	enricher := NewEnricher(db, &fakeLLM{response: summary, configured: true}, nil)

	tag := personTag("")
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("creating tag: %v", err)
	}

	got, err := enricher.GetOrGeneratePersonSummary(context.Background(), tag, someArticles(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != strings.TrimSpace(summary) {
		t.Errorf("summary = %q", got)
	}

	// The cache write landed in the tag row.
	var reloaded models.Tag
	if err := db.First(&reloaded, "id = ?", tag.ID).Error; err != nil {
		t.Fatalf("reloading tag: %v", err)
	}
	if !reloaded.HasGeneratedSummary() {
		t.Errorf("summary not cached: %q", reloaded.Description)
	}
}

func TestPersonSummaryRejectsShortOutput(t *testing.T) {
	db := setupTestDB(t)
	enricher := NewEnricher(db, &fakeLLM{response: "too short", configured: true}, nil)

	tag := personTag("")
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("creating tag: %v", err)
	}

	_, err := enricher.GetOrGeneratePersonSummary(context.Background(), tag, someArticles(1))
	if !errors.Is(err, ErrSummaryTooShort) {
		t.Fatalf("expected ErrSummaryTooShort, got %v", err)
	}

	var reloaded models.Tag
	db.First(&reloaded, "id = ?", tag.ID)
	if reloaded.Description != "" {
		t.Errorf("short output was cached: %q", reloaded.Description)
	}
}

func TestPersonContextLimitsAndNumbers(t *testing.T) {
	articles := someArticles(20)
	ctx := personContext(articles)

	if strings.Contains(ctx, "16.") {
		t.Error("context included more than 15 articles")
	}
	if !strings.Contains(ctx, "15.") {
		t.Error("context missing the 15th article")
	}
	if !strings.HasPrefix(ctx, "1. [") {
		t.Errorf("context not numbered from 1: %q", ctx[:20])
	}
}

// Package search owns the Meilisearch indexes for articles, stories and
// sources: their attribute schemas, document projections, and the typed
// query operations the web tier reads from. Index documents are disposable
// projections of relational rows; the database stays the source of truth.
package search

import (
	"errors"
	"fmt"
	"log"

	"lanka-news/internal/config"

	"github.com/meilisearch/meilisearch-go"
)

// ErrUnavailable is returned when the search engine cannot be reached.
// Callers translate it into a degraded empty response, never a crash.
var ErrUnavailable = errors.New("search engine unavailable")

// Index names
const (
	IndexArticles = "articles"
	IndexStories  = "stories"
	IndexSources  = "sources"
)

// Client wraps the Meilisearch client with the application's index schemas
type Client struct {
	meili *meilisearch.Client
}

// NewClient creates a search client from configuration
func NewClient(cfg config.MeiliConfig) *Client {
	return &Client{
		meili: meilisearch.NewClient(meilisearch.ClientConfig{
			Host:   cfg.Host,
			APIKey: cfg.APIKey,
		}),
	}
}

// Healthy reports whether the engine is reachable.
func (c *Client) Healthy() bool {
	return c.meili.IsHealthy()
}

// EnsureIndexes creates the three indexes and applies their attribute
// schemas. Safe to call on every startup: index creation on an existing
// uid and settings re-application are both idempotent.
func (c *Client) EnsureIndexes() error {
	for _, uid := range []string{IndexSources, IndexArticles, IndexStories} {
		if _, err := c.meili.CreateIndex(&meilisearch.IndexConfig{
			Uid:        uid,
			PrimaryKey: "id",
		}); err != nil {
			return fmt.Errorf("%w: creating index %s: %v", ErrUnavailable, uid, err)
		}
	}

	if _, err := c.meili.Index(IndexSources).UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "description"},
		FilterableAttributes: []string{"slug", "bias_score", "is_active", "country", "language"},
		SortableAttributes:   []string{"name", "article_count", "factuality_score"},
	}); err != nil {
		return fmt.Errorf("%w: configuring sources index: %v", ErrUnavailable, err)
	}

	if _, err := c.meili.Index(IndexArticles).UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "content", "summary", "excerpt"},
		FilterableAttributes: []string{
			"source_id", "story_id", "topics", "ai_bias_score",
			"ai_sentiment", "published_at", "is_processed",
		},
		SortableAttributes: []string{"published_at", "ai_bias_score", "created_at"},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  4,
				TwoTypos: 8,
			},
		},
	}); err != nil {
		return fmt.Errorf("%w: configuring articles index: %v", ErrUnavailable, err)
	}

	if _, err := c.meili.Index(IndexStories).UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "summary", "primary_topic"},
		FilterableAttributes: []string{
			"primary_topic", "source_count", "article_count", "is_trending",
			"is_active", "first_seen_at", "last_updated_at",
		},
		SortableAttributes: []string{"last_updated_at", "first_seen_at", "article_count", "source_count"},
	}); err != nil {
		return fmt.Errorf("%w: configuring stories index: %v", ErrUnavailable, err)
	}

	log.Println("Search indexes configured")
	return nil
}

// Package enrich derives summaries, topics, bias scores, sentiment,
// entities and embedding vectors for ingested articles via model calls,
// and writes the results back to the relational store.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"lanka-news/internal/llm"
	"lanka-news/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrUnparsable is returned when the model's response survives cleaning
// but still is not the JSON the contract asks for. The article stays
// unenriched; the batch moves on.
var ErrUnparsable = errors.New("analysis response could not be parsed")

// EmbeddingClient generates an embedding vector for a text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Enricher runs the enrichment pipeline for articles
type Enricher struct {
	db       *gorm.DB
	client   llm.Client
	embedder EmbeddingClient
}

// NewEnricher creates an enricher
func NewEnricher(db *gorm.DB, client llm.Client, embedder EmbeddingClient) *Enricher {
	return &Enricher{db: db, client: client, embedder: embedder}
}

// EnrichArticle analyzes one article and persists the result. The write
// is all-or-nothing: either every enrichment field lands in a single
// update (with ai_enriched_at set), or the row is left untouched.
func (e *Enricher) EnrichArticle(ctx context.Context, article *models.Article) error {
	text := ExtractText(article.Content)
	prompt := AnalysisPrompt(article.Title, text)

	raw, err := e.client.Complete(ctx, prompt, llm.Options{
		Temperature: 0.2,
		MaxTokens:   2048,
		JSONMode:    true,
	})
	if err != nil {
		return fmt.Errorf("analyzing article %s: %w", article.ID, err)
	}

	analysis := ParseAnalysis(llm.ParseJSON(raw))
	if !analysis.Complete() {
		return fmt.Errorf("article %s: %w", article.ID, ErrUnparsable)
	}

	embedding, err := e.embedder.Embed(ctx, embedInput(article.Title, analysis.Summary))
	if err != nil {
		return fmt.Errorf("embedding article %s: %w", article.ID, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"summary":        analysis.Summary,
		"topics":         pq.StringArray(analysis.Topics),
		"ai_bias_score":  analysis.BiasScore,
		"ai_sentiment":   analysis.Sentiment,
		"ai_enriched_at": now,
		"is_processed":   true,
		"embedding":      models.EmbeddingLiteral(embedding),
	}
	if err := e.db.Model(&models.Article{}).Where("id = ?", article.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("persisting enrichment for %s: %w", article.ID, err)
	}

	article.Summary = analysis.Summary
	article.Topics = pq.StringArray(analysis.Topics)
	article.AIBiasScore = analysis.BiasScore
	article.AISentiment = analysis.Sentiment
	article.AIEnrichedAt = &now
	article.IsProcessed = true
	article.Embedding = models.EmbeddingLiteral(embedding)

	if err := e.upsertTags(article, analysis.Entities); err != nil {
		// Tag bookkeeping is secondary; the article is already enriched.
		log.Printf("Tagging article %s failed: %v", article.ID, err)
	}

	return nil
}

// EnrichPending enriches up to limit unenriched articles, pausing between
// provider calls. Failures are isolated per article: one bad item never
// aborts the batch.
func (e *Enricher) EnrichPending(ctx context.Context, limit int, pause time.Duration) (enriched, failed int, err error) {
	var articles []models.Article
	if err := e.db.Where("ai_enriched_at IS NULL").
		Order("created_at asc").
		Limit(limit).
		Find(&articles).Error; err != nil {
		return 0, 0, fmt.Errorf("loading unenriched articles: %w", err)
	}

	for i := range articles {
		if ctx.Err() != nil {
			return enriched, failed, ctx.Err()
		}
		if err := e.EnrichArticle(ctx, &articles[i]); err != nil {
			failed++
			log.Printf("Enrichment failed: %v", err)
		} else {
			enriched++
		}
		if pause > 0 && i < len(articles)-1 {
			time.Sleep(pause)
		}
	}
	return enriched, failed, nil
}

// embedInput is the text embedded for similarity search: the title plus
// the generated summary, which is denser than raw body text.
func embedInput(title, summary string) string {
	return strings.TrimSpace(title + "\n" + summary)
}

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes an entity name into a tag slug.
func Slugify(name string) string {
	slug := slugCleanRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// upsertTags ensures a tag exists for every extracted entity and links it
// to the article. Tag article counts follow newly created links only.
func (e *Enricher) upsertTags(article *models.Article, entities []Entity) error {
	for _, entity := range entities {
		slug := Slugify(entity.Name)
		if slug == "" {
			continue
		}

		var tag models.Tag
		if err := e.db.Where("slug = ?", slug).
			Attrs(models.Tag{Name: entity.Name, Type: entity.Type}).
			FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("upserting tag %q: %w", slug, err)
		}

		var linked int64
		if err := e.db.Model(&models.ArticleTag{}).
			Where("article_id = ? AND tag_id = ?", article.ID, tag.ID).
			Count(&linked).Error; err != nil {
			return fmt.Errorf("checking tag link %q: %w", slug, err)
		}
		if linked > 0 {
			continue
		}

		if err := e.db.Create(&models.ArticleTag{ArticleID: article.ID, TagID: tag.ID}).Error; err != nil {
			return fmt.Errorf("linking tag %q: %w", slug, err)
		}
		if err := e.db.Model(&models.Tag{}).Where("id = ?", tag.ID).
			Update("article_count", gorm.Expr("article_count + 1")).Error; err != nil {
			return fmt.Errorf("counting tag %q: %w", slug, err)
		}
	}
	return nil
}

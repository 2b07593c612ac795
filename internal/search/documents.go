package search

import (
	"fmt"

	"lanka-news/internal/models"
)

// Documents are flat projections of relational rows. Timestamps are stored
// as unix seconds so Meilisearch can filter and sort on them.

// ArticleDocument is the searchable projection of an Article
type ArticleDocument struct {
	ID          string   `json:"id"`
	SourceID    string   `json:"source_id"`
	StoryID     string   `json:"story_id,omitempty"`
	SourceName  string   `json:"source_name,omitempty"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	Excerpt     string   `json:"excerpt"`
	ImageURL    string   `json:"image_url,omitempty"`
	Author      string   `json:"author,omitempty"`
	URL         string   `json:"url"`
	Topics      []string `json:"topics"`
	AIBiasScore float64  `json:"ai_bias_score"`
	AISentiment string   `json:"ai_sentiment"`
	IsProcessed bool     `json:"is_processed"`
	PublishedAt int64    `json:"published_at"`
	CreatedAt   int64    `json:"created_at"`
}

// StoryDocument is the searchable projection of a Story
type StoryDocument struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	PrimaryTopic  string `json:"primary_topic"`
	ImageURL      string `json:"image_url,omitempty"`
	ArticleCount  int    `json:"article_count"`
	SourceCount   int    `json:"source_count"`
	BiasLeft      int    `json:"bias_left"`
	BiasCenter    int    `json:"bias_center"`
	BiasRight     int    `json:"bias_right"`
	IsTrending    bool   `json:"is_trending"`
	IsActive      bool   `json:"is_active"`
	FirstSeenAt   int64  `json:"first_seen_at"`
	LastUpdatedAt int64  `json:"last_updated_at"`
}

// SourceDocument is the searchable projection of a Source
type SourceDocument struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	LogoURL         string  `json:"logo_url,omitempty"`
	Country         string  `json:"country"`
	Language        string  `json:"language"`
	BiasScore       float64 `json:"bias_score"`
	FactualityScore float64 `json:"factuality_score"`
	IsActive        bool    `json:"is_active"`
	ArticleCount    int     `json:"article_count"`
}

// NewArticleDocument projects an article row into its search document
func NewArticleDocument(a *models.Article) ArticleDocument {
	doc := ArticleDocument{
		ID:          a.ID.String(),
		SourceID:    a.SourceID.String(),
		Title:       a.Title,
		Content:     a.Content,
		Summary:     a.Summary,
		Excerpt:     a.Excerpt,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		URL:         a.URL,
		Topics:      a.Topics,
		AIBiasScore: a.AIBiasScore,
		AISentiment: a.AISentiment,
		IsProcessed: a.IsProcessed,
		CreatedAt:   a.CreatedAt.Unix(),
	}
	if a.StoryID != nil {
		doc.StoryID = a.StoryID.String()
	}
	if a.Source != nil {
		doc.SourceName = a.Source.Name
	}
	if a.PublishedAt != nil {
		doc.PublishedAt = a.PublishedAt.Unix()
	}
	if doc.Topics == nil {
		doc.Topics = []string{}
	}
	return doc
}

// NewStoryDocument projects a story row into its search document
func NewStoryDocument(s *models.Story) StoryDocument {
	return StoryDocument{
		ID:            s.ID.String(),
		Title:         s.Title,
		Summary:       s.Summary,
		PrimaryTopic:  s.PrimaryTopic,
		ImageURL:      s.ImageURL,
		ArticleCount:  s.ArticleCount,
		SourceCount:   s.SourceCount,
		BiasLeft:      s.BiasLeftCount,
		BiasCenter:    s.BiasCenterCount,
		BiasRight:     s.BiasRightCount,
		IsTrending:    s.IsTrending,
		IsActive:      s.IsActive,
		FirstSeenAt:   s.FirstSeenAt.Unix(),
		LastUpdatedAt: s.LastUpdatedAt.Unix(),
	}
}

// NewSourceDocument projects a source row into its search document
func NewSourceDocument(s *models.Source) SourceDocument {
	return SourceDocument{
		ID:              s.ID.String(),
		Name:            s.Name,
		Slug:            s.Slug,
		Description:     s.Description,
		URL:             s.URL,
		LogoURL:         s.LogoURL,
		Country:         s.Country,
		Language:        s.Language,
		BiasScore:       s.BiasScore,
		FactualityScore: s.FactualityScore,
		IsActive:        s.IsActive,
		ArticleCount:    s.ArticleCount,
	}
}

// upsert adds documents to an index; Meilisearch treats AddDocuments as an
// upsert keyed by the primary key, so re-indexing a row is harmless.
func (c *Client) upsert(index string, docs interface{}) error {
	if _, err := c.meili.Index(index).AddDocuments(docs); err != nil {
		return fmt.Errorf("%w: indexing into %s: %v", ErrUnavailable, index, err)
	}
	return nil
}

// IndexArticle upserts a single article document
func (c *Client) IndexArticle(a *models.Article) error {
	return c.upsert(IndexArticles, []ArticleDocument{NewArticleDocument(a)})
}

// IndexArticles upserts a batch of article documents
func (c *Client) IndexArticles(articles []models.Article) error {
	docs := make([]ArticleDocument, len(articles))
	for i := range articles {
		docs[i] = NewArticleDocument(&articles[i])
	}
	return c.upsert(IndexArticles, docs)
}

// IndexStory upserts a single story document
func (c *Client) IndexStory(s *models.Story) error {
	return c.upsert(IndexStories, []StoryDocument{NewStoryDocument(s)})
}

// IndexStories upserts a batch of story documents
func (c *Client) IndexStories(stories []models.Story) error {
	docs := make([]StoryDocument, len(stories))
	for i := range stories {
		docs[i] = NewStoryDocument(&stories[i])
	}
	return c.upsert(IndexStories, docs)
}

// IndexSource upserts a single source document
func (c *Client) IndexSource(s *models.Source) error {
	return c.upsert(IndexSources, []SourceDocument{NewSourceDocument(s)})
}

// IndexSources upserts a batch of source documents
func (c *Client) IndexSources(sources []models.Source) error {
	docs := make([]SourceDocument, len(sources))
	for i := range sources {
		docs[i] = NewSourceDocument(&sources[i])
	}
	return c.upsert(IndexSources, docs)
}

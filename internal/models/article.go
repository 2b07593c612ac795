package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Article represents one ingested piece of content
type Article struct {
	ID       uuid.UUID  `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SourceID uuid.UUID  `json:"source_id" db:"source_id" gorm:"type:uuid;index;not null"`
	StoryID  *uuid.UUID `json:"story_id" db:"story_id" gorm:"type:uuid;index"`

	URL         string     `json:"url" db:"url" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content" gorm:"type:text"`
	Summary     string     `json:"summary" db:"summary" gorm:"type:text"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	Author      string     `json:"author" db:"author"`
	PublishedAt *time.Time `json:"published_at" db:"published_at" gorm:"index"`

	// Enrichment output. AIEnrichedAt is non-null only when every
	// enrichment field (summary, topics, bias, sentiment, embedding)
	// was written in the same update.
	Topics       pq.StringArray `json:"topics" db:"topics" gorm:"type:text[]"`
	AIBiasScore  float64        `json:"ai_bias_score" db:"ai_bias_score" gorm:"default:0.0"`
	AISentiment  string         `json:"ai_sentiment" db:"ai_sentiment"`
	AIEnrichedAt *time.Time     `json:"ai_enriched_at" db:"ai_enriched_at"`
	IsProcessed  bool           `json:"is_processed" db:"is_processed" gorm:"default:false"`

	// Embedding stored as a bracketed comma-joined literal, e.g. "[0.1,0.2]",
	// so it can be cast straight into a pgvector column.
	Embedding string `json:"-" db:"embedding" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Source *Source `json:"source,omitempty" gorm:"foreignKey:SourceID"`
	Story  *Story  `json:"story,omitempty" gorm:"foreignKey:StoryID"`
	Tags   []Tag   `json:"tags,omitempty" gorm:"many2many:article_tags;"`
}

// TableName sets the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// EmbeddingLiteral renders a vector as the bracketed comma-joined string
// persisted in the embedding column.
func EmbeddingLiteral(vec []float64) string {
	if len(vec) == 0 {
		return ""
	}
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

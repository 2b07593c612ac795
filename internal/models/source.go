package models

import (
	"time"

	"github.com/google/uuid"
)

// Source represents a publisher whose articles are ingested
type Source struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `json:"name" db:"name" gorm:"not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"uniqueIndex;not null"`
	URL         string    `json:"url" db:"url"`
	LogoURL     string    `json:"logo_url" db:"logo_url"`
	Description string    `json:"description" db:"description"`
	Country     string    `json:"country" db:"country"`
	Language    string    `json:"language" db:"language"`

	// Editorial scores assigned out-of-band, never computed here
	BiasScore       float64 `json:"bias_score" db:"bias_score" gorm:"default:0.0"`
	FactualityScore float64 `json:"factuality_score" db:"factuality_score" gorm:"default:0.0"`

	IsActive     bool `json:"is_active" db:"is_active" gorm:"default:true"`
	ArticleCount int  `json:"article_count" db:"article_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Articles []Article `json:"articles,omitempty" gorm:"foreignKey:SourceID"`
}

// BiasCategory returns the left/center/right bucket for this source.
func (s *Source) BiasCategory() string {
	return BiasCategory(s.BiasScore)
}

// TableName sets the table name for the Source model
func (Source) TableName() string {
	return "sources"
}

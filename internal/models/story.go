package models

import (
	"time"

	"github.com/google/uuid"
)

// Story represents a cluster of articles covering the same event.
// Clustering itself happens at ingestion time; stories are consumed as given.
type Story struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title        string    `json:"title" db:"title" gorm:"not null"`
	Summary      string    `json:"summary" db:"summary" gorm:"type:text"`
	PrimaryTopic string    `json:"primary_topic" db:"primary_topic" gorm:"index"`
	ImageURL     string    `json:"image_url" db:"image_url"`

	ArticleCount int `json:"article_count" db:"article_count" gorm:"default:0"`
	SourceCount  int `json:"source_count" db:"source_count" gorm:"default:0"`

	// Count of contributing sources per bias category
	BiasLeftCount   int `json:"bias_left_count" db:"bias_left_count" gorm:"default:0"`
	BiasCenterCount int `json:"bias_center_count" db:"bias_center_count" gorm:"default:0"`
	BiasRightCount  int `json:"bias_right_count" db:"bias_right_count" gorm:"default:0"`

	FirstSeenAt   time.Time `json:"first_seen_at" db:"first_seen_at"`
	LastUpdatedAt time.Time `json:"last_updated_at" db:"last_updated_at" gorm:"index"`
	IsTrending    bool      `json:"is_trending" db:"is_trending" gorm:"default:false"`
	IsActive      bool      `json:"is_active" db:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Articles []Article `json:"articles,omitempty" gorm:"foreignKey:StoryID"`
}

// TableName sets the table name for the Story model
func (Story) TableName() string {
	return "stories"
}

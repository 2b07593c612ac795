package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag types for extracted entities and topics.
const (
	TagPerson       = "person"
	TagOrganization = "organization"
	TagLocation     = "location"
	TagTopic        = "topic"
	TagEvent        = "event"
	TagCustom       = "custom"
)

// A person tag's description doubles as a cache for the AI-generated
// biography; anything longer than this is treated as already generated.
const GeneratedSummaryMinLength = 50

// Tag represents a named entity or topic attached to articles
type Tag struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Slug          string    `json:"slug" db:"slug" gorm:"uniqueIndex;not null"`
	Name          string    `json:"name" db:"name" gorm:"not null"`
	NameSi        string    `json:"name_si" db:"name_si"`
	Type          string    `json:"type" db:"type" gorm:"index;default:custom"`
	Description   string    `json:"description" db:"description" gorm:"type:text"`
	DescriptionSi string    `json:"description_si" db:"description_si" gorm:"type:text"`
	ArticleCount  int       `json:"article_count" db:"article_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Articles []Article `json:"articles,omitempty" gorm:"many2many:article_tags;"`
}

// HasGeneratedSummary reports whether the description already holds a
// generated biography that should be reused instead of regenerated.
func (t *Tag) HasGeneratedSummary() bool {
	return len(t.Description) > GeneratedSummaryMinLength
}

// TableName sets the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// ArticleTag is the article <-> tag join row
type ArticleTag struct {
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"primaryKey;type:uuid"`
	TagID     uuid.UUID `json:"tag_id" db:"tag_id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the ArticleTag model
func (ArticleTag) TableName() string {
	return "article_tags"
}

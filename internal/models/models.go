package models

import (
	"gorm.io/gorm"
)

// Bias categories derived from a source's static bias score.
const (
	BiasLeft   = "left"
	BiasCenter = "center"
	BiasRight  = "right"
)

// Sentiment values an enriched article may carry.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// BiasCategory maps a bias score to left/center/right.
// Boundary values -0.3 and 0.3 map to center.
func BiasCategory(score float64) string {
	switch {
	case score < -0.3:
		return BiasLeft
	case score > 0.3:
		return BiasRight
	default:
		return BiasCenter
	}
}

// AutoMigrate runs migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Source{},
		&Article{},
		&Story{},
		&Tag{},
		&ArticleTag{},
	)
}

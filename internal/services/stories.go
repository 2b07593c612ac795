// Package services holds the relational-store maintenance jobs: story
// bias bookkeeping and search-index synchronization.
package services

import (
	"fmt"
	"log"
	"time"

	"lanka-news/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoriesService maintains derived story fields
type StoriesService struct {
	db *gorm.DB
}

// NewStoriesService creates a stories service
func NewStoriesService(db *gorm.DB) *StoriesService {
	return &StoriesService{db: db}
}

// RecalculateBiasDistribution recomputes a story's per-category source
// counts from the static bias scores of its contributing sources. Counts
// cover only sources with a known bias category; the category thresholds
// live in models.BiasCategory.
func (s *StoriesService) RecalculateBiasDistribution(storyID uuid.UUID) error {
	var articles []models.Article
	if err := s.db.Preload("Source").
		Where("story_id = ?", storyID).
		Find(&articles).Error; err != nil {
		return fmt.Errorf("loading story articles: %w", err)
	}

	seen := make(map[uuid.UUID]bool)
	counts := map[string]int{}
	for i := range articles {
		src := articles[i].Source
		if src == nil || seen[src.ID] {
			continue
		}
		seen[src.ID] = true
		counts[src.BiasCategory()]++
	}

	updates := map[string]interface{}{
		"article_count":     len(articles),
		"source_count":      len(seen),
		"bias_left_count":   counts[models.BiasLeft],
		"bias_center_count": counts[models.BiasCenter],
		"bias_right_count":  counts[models.BiasRight],
		"last_updated_at":   time.Now(),
	}
	if err := s.db.Model(&models.Story{}).Where("id = ?", storyID).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating story %s: %w", storyID, err)
	}
	return nil
}

// RecalculateAll recomputes bias distributions for every active story.
// Per-story failures are logged and skipped.
func (s *StoriesService) RecalculateAll() error {
	var ids []uuid.UUID
	if err := s.db.Model(&models.Story{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("listing stories: %w", err)
	}
	for _, id := range ids {
		if err := s.RecalculateBiasDistribution(id); err != nil {
			log.Printf("Bias distribution for story %s failed: %v", id, err)
		}
	}
	return nil
}

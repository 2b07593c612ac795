package services

import (
	"fmt"
	"log"
	"time"

	"lanka-news/internal/models"
	"lanka-news/internal/search"

	"gorm.io/gorm"
)

const indexBatchSize = 500

// Indexer projects relational rows into the search indexes. Documents are
// disposable: a full rebuild and an incremental pass produce the same
// index state because every write is an upsert keyed by id.
type Indexer struct {
	db     *gorm.DB
	search *search.Client
}

// NewIndexer creates an indexer
func NewIndexer(db *gorm.DB, searchClient *search.Client) *Indexer {
	return &Indexer{db: db, search: searchClient}
}

// FullReindex pushes every source, article and story into the engine.
func (ix *Indexer) FullReindex() error {
	start := time.Now()

	var sources []models.Source
	if err := ix.db.Find(&sources).Error; err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	if len(sources) > 0 {
		if err := ix.search.IndexSources(sources); err != nil {
			return err
		}
	}

	var articles []models.Article
	result := ix.db.Preload("Source").FindInBatches(&articles, indexBatchSize, func(tx *gorm.DB, batch int) error {
		return ix.search.IndexArticles(articles)
	})
	if result.Error != nil {
		return fmt.Errorf("indexing articles: %w", result.Error)
	}

	var stories []models.Story
	result = ix.db.FindInBatches(&stories, indexBatchSize, func(tx *gorm.DB, batch int) error {
		return ix.search.IndexStories(stories)
	})
	if result.Error != nil {
		return fmt.Errorf("indexing stories: %w", result.Error)
	}

	log.Printf("Full reindex finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// SyncSince upserts rows updated after the given time. Used by the
// background sync loop to keep the index eventually consistent with the
// store between full rebuilds.
func (ix *Indexer) SyncSince(since time.Time) error {
	var articles []models.Article
	if err := ix.db.Preload("Source").
		Where("updated_at > ?", since).
		Find(&articles).Error; err != nil {
		return fmt.Errorf("loading updated articles: %w", err)
	}
	if len(articles) > 0 {
		if err := ix.search.IndexArticles(articles); err != nil {
			return err
		}
	}

	var stories []models.Story
	if err := ix.db.Where("updated_at > ?", since).Find(&stories).Error; err != nil {
		return fmt.Errorf("loading updated stories: %w", err)
	}
	if len(stories) > 0 {
		if err := ix.search.IndexStories(stories); err != nil {
			return err
		}
	}

	var sources []models.Source
	if err := ix.db.Where("updated_at > ?", since).Find(&sources).Error; err != nil {
		return fmt.Errorf("loading updated sources: %w", err)
	}
	if len(sources) > 0 {
		if err := ix.search.IndexSources(sources); err != nil {
			return err
		}
	}

	return nil
}

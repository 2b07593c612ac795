package services

import (
	"testing"
	"time"

	"lanka-news/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createSource(t *testing.T, db *gorm.DB, slug string, bias float64) *models.Source {
	t.Helper()
	source := &models.Source{ID: uuid.New(), Name: slug, Slug: slug, BiasScore: bias}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("creating source: %v", err)
	}
	return source
}

func attachArticle(t *testing.T, db *gorm.DB, source *models.Source, story *models.Story, url string) {
	t.Helper()
	article := &models.Article{
		ID:       uuid.New(),
		SourceID: source.ID,
		StoryID:  &story.ID,
		URL:      url,
		Title:    "Article",
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("creating article: %v", err)
	}
}

func TestRecalculateBiasDistribution(t *testing.T) {
	db := setupTestDB(t)

	left := createSource(t, db, "left-paper", -0.6)
	centerLow := createSource(t, db, "center-low", -0.3)  // boundary: center
	centerHigh := createSource(t, db, "center-high", 0.3) // boundary: center
	right := createSource(t, db, "right-paper", 0.7)

	story := &models.Story{ID: uuid.New(), Title: "Budget passed", FirstSeenAt: time.Now(), LastUpdatedAt: time.Now()}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("creating story: %v", err)
	}

	attachArticle(t, db, left, story, "https://l.lk/1")
	attachArticle(t, db, centerLow, story, "https://c1.lk/1")
	attachArticle(t, db, centerHigh, story, "https://c2.lk/1")
	attachArticle(t, db, right, story, "https://r.lk/1")
	// Second article from the same source must not double-count it.
	attachArticle(t, db, right, story, "https://r.lk/2")

	if err := NewStoriesService(db).RecalculateBiasDistribution(story.ID); err != nil {
		t.Fatalf("RecalculateBiasDistribution failed: %v", err)
	}

	var got models.Story
	if err := db.First(&got, "id = ?", story.ID).Error; err != nil {
		t.Fatalf("reloading story: %v", err)
	}

	if got.ArticleCount != 5 {
		t.Errorf("article_count = %d", got.ArticleCount)
	}
	if got.SourceCount != 4 {
		t.Errorf("source_count = %d", got.SourceCount)
	}
	if got.BiasLeftCount != 1 || got.BiasCenterCount != 2 || got.BiasRightCount != 1 {
		t.Errorf("distribution = %d/%d/%d", got.BiasLeftCount, got.BiasCenterCount, got.BiasRightCount)
	}
	// Distribution counts sum to the contributing sources with a known category.
	if got.BiasLeftCount+got.BiasCenterCount+got.BiasRightCount != got.SourceCount {
		t.Error("distribution does not sum to source count")
	}
}

func TestRecalculateAllSkipsFailures(t *testing.T) {
	db := setupTestDB(t)

	story := &models.Story{ID: uuid.New(), Title: "Empty story", IsActive: true, FirstSeenAt: time.Now(), LastUpdatedAt: time.Now()}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("creating story: %v", err)
	}

	if err := NewStoriesService(db).RecalculateAll(); err != nil {
		t.Fatalf("RecalculateAll failed: %v", err)
	}

	var got models.Story
	db.First(&got, "id = ?", story.ID)
	if got.SourceCount != 0 || got.ArticleCount != 0 {
		t.Errorf("empty story got counts %d/%d", got.ArticleCount, got.SourceCount)
	}
}

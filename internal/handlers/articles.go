package handlers

import (
	"net/http"
	"strconv"

	"lanka-news/internal/enrich"
	"lanka-news/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ArticlesHandler serves article reads straight from the relational store
type ArticlesHandler struct {
	db       *gorm.DB
	enricher *enrich.Enricher
}

// NewArticlesHandler creates an articles handler
func NewArticlesHandler(db *gorm.DB, enricher *enrich.Enricher) *ArticlesHandler {
	return &ArticlesHandler{db: db, enricher: enricher}
}

// Latest handles GET /api/articles/latest
func (h *ArticlesHandler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}

	var articles []models.Article
	if err := h.db.Preload("Source").
		Order("published_at desc").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// PersonSummary handles GET /api/tags/:slug/summary. A missing or failed
// summary renders as an empty field, never an error: the page degrades.
func (h *ArticlesHandler) PersonSummary(c *gin.Context) {
	var tag models.Tag
	if err := h.db.Where("slug = ? AND type = ?", c.Param("slug"), models.TagPerson).
		First(&tag).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var articles []models.Article
	h.db.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Where("article_tags.tag_id = ?", tag.ID).
		Order("published_at desc").
		Limit(15).
		Find(&articles)

	summary, err := h.enricher.GetOrGeneratePersonSummary(c.Request.Context(), &tag, articles)
	if err != nil {
		summary = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":     tag.Slug,
		"name":    tag.Name,
		"summary": summary,
	})
}

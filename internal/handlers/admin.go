package handlers

import (
	"net/http"

	"lanka-news/internal/config"
	"lanka-news/internal/enrich"
	"lanka-news/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the maintenance triggers behind the shared-secret gate
type AdminHandler struct {
	indexer  *services.Indexer
	stories  *services.StoriesService
	enricher *enrich.Enricher
	cfg      config.ServerConfig
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(indexer *services.Indexer, stories *services.StoriesService, enricher *enrich.Enricher, cfg config.ServerConfig) *AdminHandler {
	return &AdminHandler{indexer: indexer, stories: stories, enricher: enricher, cfg: cfg}
}

// Auth is the single shared-secret gate for admin routes
func (h *AdminHandler) Auth() gin.HandlerFunc {
	return gin.BasicAuth(gin.Accounts{
		"admin": h.cfg.AdminPassword,
	})
}

// Reindex handles POST /admin/reindex
func (h *AdminHandler) Reindex(c *gin.Context) {
	if err := h.indexer.FullReindex(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reindexed"})
}

// Enrich handles POST /admin/enrich
func (h *AdminHandler) Enrich(c *gin.Context) {
	enriched, failed, err := h.enricher.EnrichPending(c.Request.Context(), 25, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enriched": enriched, "failed": failed})
}

// RecalculateStories handles POST /admin/stories/recalculate
func (h *AdminHandler) RecalculateStories(c *gin.Context) {
	if err := h.stories.RecalculateAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recalculated"})
}

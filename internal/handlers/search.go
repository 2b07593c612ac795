package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lanka-news/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
)

// Searcher is the read surface of the search gateway the handlers need.
type Searcher interface {
	SearchArticles(query string, filters search.ArticleFilters, limit, offset int64) (*meilisearch.SearchResponse, error)
	SearchStories(query string, filters search.StoryFilters, limit, offset int64) (*meilisearch.SearchResponse, error)
	GetTrendingStories(limit int64) (*meilisearch.SearchResponse, error)
	GetArticlesByTopic(topic string, limit int64) (*meilisearch.SearchResponse, error)
	GetSources() (*meilisearch.SearchResponse, error)
}

// SearchHandler serves search queries from the web boundary
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a search handler
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// degrade maps engine unreachability to an empty 503 response; search
// being down must never take a page down with it.
func degrade(c *gin.Context, err error) bool {
	if errors.Is(err, search.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Search service unavailable",
		})
		return true
	}
	return false
}

func parseInt64(c *gin.Context, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.DefaultQuery(key, ""), 10, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit := parseInt64(c, "limit", 20)
	offset := parseInt64(c, "offset", 0)
	topic := c.Query("topic")

	var resp *meilisearch.SearchResponse
	var err error

	switch c.DefaultQuery("type", "articles") {
	case "stories":
		filters := search.StoryFilters{PrimaryTopic: topic}
		resp, err = h.searcher.SearchStories(query, filters, limit, offset)
	default:
		filters := search.ArticleFilters{}
		if topic != "" {
			filters.Topics = []string{topic}
		}
		resp, err = h.searcher.SearchArticles(query, filters, limit, offset)
	}

	if err != nil {
		if degrade(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trending handles GET /api/stories/trending
func (h *SearchHandler) Trending(c *gin.Context) {
	resp, err := h.searcher.GetTrendingStories(parseInt64(c, "limit", 10))
	if err != nil {
		if degrade(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArticlesByTopic handles GET /api/topics/:topic/articles
func (h *SearchHandler) ArticlesByTopic(c *gin.Context) {
	resp, err := h.searcher.GetArticlesByTopic(c.Param("topic"), parseInt64(c, "limit", 20))
	if err != nil {
		if degrade(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sources handles GET /api/sources
func (h *SearchHandler) Sources(c *gin.Context) {
	resp, err := h.searcher.GetSources()
	if err != nil {
		if degrade(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

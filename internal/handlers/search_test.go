package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lanka-news/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
)

type fakeSearcher struct {
	err          error
	lastQuery    string
	lastFilters  search.ArticleFilters
	lastStoryReq search.StoryFilters
	lastLimit    int64
	lastOffset   int64
}

func (f *fakeSearcher) SearchArticles(query string, filters search.ArticleFilters, limit, offset int64) (*meilisearch.SearchResponse, error) {
	f.lastQuery, f.lastFilters, f.lastLimit, f.lastOffset = query, filters, limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return &meilisearch.SearchResponse{Hits: []interface{}{}, Query: query}, nil
}

func (f *fakeSearcher) SearchStories(query string, filters search.StoryFilters, limit, offset int64) (*meilisearch.SearchResponse, error) {
	f.lastQuery, f.lastStoryReq, f.lastLimit, f.lastOffset = query, filters, limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return &meilisearch.SearchResponse{Hits: []interface{}{}, Query: query}, nil
}

func (f *fakeSearcher) GetTrendingStories(limit int64) (*meilisearch.SearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &meilisearch.SearchResponse{Hits: []interface{}{}}, nil
}

func (f *fakeSearcher) GetArticlesByTopic(topic string, limit int64) (*meilisearch.SearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &meilisearch.SearchResponse{Hits: []interface{}{}}, nil
}

func (f *fakeSearcher) GetSources() (*meilisearch.SearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &meilisearch.SearchResponse{Hits: []interface{}{}}, nil
}

func searchRouter(searcher Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSearchHandler(searcher)
	r.GET("/api/search", h.Search)
	r.GET("/api/stories/trending", h.Trending)
	return r
}

func TestSearchDefaults(t *testing.T) {
	fake := &fakeSearcher{}
	r := searchRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?q=budget", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budget", fake.lastQuery)
	assert.Equal(t, int64(20), fake.lastLimit)
	assert.Equal(t, int64(0), fake.lastOffset)
}

func TestSearchTopicBecomesFilter(t *testing.T) {
	fake := &fakeSearcher{}
	r := searchRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?q=&topic=cricket&limit=5&offset=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"cricket"}, fake.lastFilters.Topics)
	assert.Equal(t, int64(5), fake.lastLimit)
	assert.Equal(t, int64(10), fake.lastOffset)
}

func TestSearchStoriesType(t *testing.T) {
	fake := &fakeSearcher{}
	r := searchRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?q=floods&type=stories&topic=environment", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "environment", fake.lastStoryReq.PrimaryTopic)
}

// Engine down means a degraded 503, not a crash or a 500.
func TestSearchUnavailableDegrades(t *testing.T) {
	fake := &fakeSearcher{err: search.ErrUnavailable}
	r := searchRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/search?q=anything", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Search service unavailable", body["error"])
}

func TestTrendingUnavailableDegrades(t *testing.T) {
	fake := &fakeSearcher{err: search.ErrUnavailable}
	r := searchRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/stories/trending", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

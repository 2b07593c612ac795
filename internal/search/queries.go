package search

import (
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// DefaultPageSize is the page size used when the caller supplies none.
const DefaultPageSize = 20

// Request builders are separated from transport so query shape (filter,
// sort, paging) stays testable without a running engine.

func articleRequest(filters ArticleFilters, limit, offset int64) *meilisearch.SearchRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	req := &meilisearch.SearchRequest{
		Limit:  limit,
		Offset: offset,
		Sort:   []string{"published_at:desc"},
	}
	if expr := filters.Expression(); expr != "" {
		req.Filter = expr
	}
	return req
}

func storyRequest(filters StoryFilters, limit, offset int64) *meilisearch.SearchRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	req := &meilisearch.SearchRequest{
		Limit:  limit,
		Offset: offset,
		Sort:   []string{"last_updated_at:desc"},
	}
	if expr := filters.Expression(); expr != "" {
		req.Filter = expr
	}
	return req
}

// trendingRequest fixes the trending story contract: at least two sources,
// still active, newest first with article_count breaking timestamp ties.
func trendingRequest(limit int64) *meilisearch.SearchRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: "source_count >= 2 AND is_active = true",
		Sort:   []string{"last_updated_at:desc", "article_count:desc"},
	}
}

func latestRequest(limit int64) *meilisearch.SearchRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &meilisearch.SearchRequest{
		Limit: limit,
		Sort:  []string{"published_at:desc"},
	}
}

func topicRequest(topic string, limit int64) *meilisearch.SearchRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &meilisearch.SearchRequest{
		Limit:  limit,
		Filter: eqString("topics", topic),
		Sort:   []string{"published_at:desc"},
	}
}

func sourcesRequest() *meilisearch.SearchRequest {
	return &meilisearch.SearchRequest{
		Limit:  100,
		Filter: "is_active = true",
		Sort:   []string{"name:asc"},
	}
}

func (c *Client) search(index, query string, req *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error) {
	resp, err := c.meili.Index(index).Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %s: %v", ErrUnavailable, index, err)
	}
	return resp, nil
}

// SearchArticles runs a full-text article search with the given filters,
// newest first.
func (c *Client) SearchArticles(query string, filters ArticleFilters, limit, offset int64) (*meilisearch.SearchResponse, error) {
	return c.search(IndexArticles, query, articleRequest(filters, limit, offset))
}

// SearchStories runs a full-text story search with the given filters,
// most recently updated first.
func (c *Client) SearchStories(query string, filters StoryFilters, limit, offset int64) (*meilisearch.SearchResponse, error) {
	return c.search(IndexStories, query, storyRequest(filters, limit, offset))
}

// GetTrendingStories returns active multi-source stories, newest first.
func (c *Client) GetTrendingStories(limit int64) (*meilisearch.SearchResponse, error) {
	return c.search(IndexStories, "", trendingRequest(limit))
}

// GetLatestArticles returns the most recently published articles.
func (c *Client) GetLatestArticles(limit int64) (*meilisearch.SearchResponse, error) {
	return c.search(IndexArticles, "", latestRequest(limit))
}

// GetArticlesByTopic returns the newest articles carrying the given topic.
func (c *Client) GetArticlesByTopic(topic string, limit int64) (*meilisearch.SearchResponse, error) {
	return c.search(IndexArticles, "", topicRequest(topic, limit))
}

// GetSources returns all active sources ordered by name.
func (c *Client) GetSources() (*meilisearch.SearchResponse, error) {
	return c.search(IndexSources, "", sourcesRequest())
}

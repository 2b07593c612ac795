package search

import (
	"fmt"
	"strconv"
	"strings"
)

// ArticleFilters narrows an article search. Zero values mean "no filter";
// the bias bounds are pointers so 0.0 remains a usable bound.
type ArticleFilters struct {
	SourceID  string
	StoryID   string
	Topics    []string
	BiasMin   *float64
	BiasMax   *float64
	Sentiment string
}

// StoryFilters narrows a story search.
type StoryFilters struct {
	PrimaryTopic   string
	MinSourceCount int
	IsTrending     *bool
}

// escapeString makes a value safe to interpolate into a quoted filter
// operand. Backslashes are doubled before quotes so the result never
// terminates the literal early; filter values are user-influenced
// (topics, sentiment, ids) and must not be able to inject operators.
func escapeString(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

func eqString(field, value string) string {
	return fmt.Sprintf("%s = \"%s\"", field, escapeString(value))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Expression renders the article filters as a Meilisearch filter string.
// Clauses are ANDed in a fixed order (source, story, topics, bias min,
// bias max, sentiment); topic values OR-combine inside parentheses so the
// grouping survives the outer AND regardless of engine precedence.
func (f ArticleFilters) Expression() string {
	var clauses []string
	if f.SourceID != "" {
		clauses = append(clauses, eqString("source_id", f.SourceID))
	}
	if f.StoryID != "" {
		clauses = append(clauses, eqString("story_id", f.StoryID))
	}
	if len(f.Topics) > 0 {
		topicClauses := make([]string, len(f.Topics))
		for i, topic := range f.Topics {
			topicClauses[i] = eqString("topics", topic)
		}
		clauses = append(clauses, "("+strings.Join(topicClauses, " OR ")+")")
	}
	if f.BiasMin != nil {
		clauses = append(clauses, fmt.Sprintf("ai_bias_score >= %s", formatFloat(*f.BiasMin)))
	}
	if f.BiasMax != nil {
		clauses = append(clauses, fmt.Sprintf("ai_bias_score <= %s", formatFloat(*f.BiasMax)))
	}
	if f.Sentiment != "" {
		clauses = append(clauses, eqString("ai_sentiment", f.Sentiment))
	}
	return strings.Join(clauses, " AND ")
}

// Expression renders the story filters as a Meilisearch filter string.
func (f StoryFilters) Expression() string {
	var clauses []string
	if f.PrimaryTopic != "" {
		clauses = append(clauses, eqString("primary_topic", f.PrimaryTopic))
	}
	if f.MinSourceCount > 0 {
		clauses = append(clauses, fmt.Sprintf("source_count >= %d", f.MinSourceCount))
	}
	if f.IsTrending != nil {
		clauses = append(clauses, fmt.Sprintf("is_trending = %t", *f.IsTrending))
	}
	return strings.Join(clauses, " AND ")
}

package enrich

import (
	"strings"

	"lanka-news/internal/models"
)

// Analysis is the parsed result of a bias/entity prompt. The model is an
// external collaborator, not a parser we control, so every field here is
// filled defensively: missing or malformed keys degrade to zero values
// instead of failing the article.
type Analysis struct {
	Summary             string
	Topics              []string
	BiasScore           float64
	Sentiment           string
	BiasIndicators      []string
	IsOriginalReporting bool
	ArticleType         string
	CrimeType           string
	Locations           []string
	LawEnforcement      []string
	PoliceStation       string
	PoliticalParty      string
	ElectionInfo        *ElectionInfo
	KeyPeople           []PersonMention
	KeyQuotes           []Quote
	Casualties          *Casualties
	MonetaryAmounts     []MonetaryAmount
	Entities            []Entity
}

// ElectionInfo describes election coverage in an article
type ElectionInfo struct {
	Type         string
	Constituency string
	Result       string
	Votes        string
}

// PersonMention is a key person with their role
type PersonMention struct {
	Name string
	Role string
}

// Quote is a key quote with its speaker
type Quote struct {
	Text    string
	Speaker string
}

// Casualties summarizes deaths and injuries reported in an article
type Casualties struct {
	Deaths      int
	Injuries    int
	Description string
}

// MonetaryAmount is a money figure mentioned in an article
type MonetaryAmount struct {
	Amount   float64
	Currency string
	Context  string
}

// Entity is an extracted named entity
type Entity struct {
	Name string
	Type string
}

// Limits the contract places on list fields.
const (
	maxKeyPeople = 5
	maxKeyQuotes = 3
	maxEntities  = 15
)

// ParseAnalysis converts the generic JSON map from the model into a typed
// Analysis. Returns nil only for a nil map; otherwise every recognizable
// field is extracted and out-of-range values are normalized (a bias score
// outside [-1,1] is suspect data, so it is clamped, not crashed on).
func ParseAnalysis(raw map[string]interface{}) *Analysis {
	if raw == nil {
		return nil
	}

	a := &Analysis{
		Summary:             getString(raw, "summary"),
		Topics:              filterVocabulary(getStringSlice(raw, "topics"), TopicVocabulary),
		BiasScore:           clampBias(getFloat(raw, "bias_score")),
		Sentiment:           normalizeSentiment(getString(raw, "sentiment")),
		BiasIndicators:      getStringSlice(raw, "bias_indicators"),
		IsOriginalReporting: getBool(raw, "is_original_reporting"),
		ArticleType:         oneOf(getString(raw, "article_type"), ArticleTypes, "news"),
		CrimeType:           oneOf(getString(raw, "crime_type"), CrimeTypes, ""),
		Locations:           getStringSlice(raw, "locations"),
		LawEnforcement:      getStringSlice(raw, "law_enforcement"),
		PoliceStation:       getString(raw, "police_station"),
		PoliticalParty:      getString(raw, "political_party"),
	}

	if obj, ok := raw["election_info"].(map[string]interface{}); ok {
		a.ElectionInfo = &ElectionInfo{
			Type:         getString(obj, "type"),
			Constituency: getString(obj, "constituency"),
			Result:       getString(obj, "result"),
			Votes:        getString(obj, "votes"),
		}
	}

	if obj, ok := raw["casualties"].(map[string]interface{}); ok {
		a.Casualties = &Casualties{
			Deaths:      int(getFloat(obj, "deaths")),
			Injuries:    int(getFloat(obj, "injuries")),
			Description: getString(obj, "description"),
		}
	}

	for _, item := range getObjectSlice(raw, "key_people") {
		if name := getString(item, "name"); name != "" {
			a.KeyPeople = append(a.KeyPeople, PersonMention{Name: name, Role: getString(item, "role")})
		}
		if len(a.KeyPeople) == maxKeyPeople {
			break
		}
	}

	for _, item := range getObjectSlice(raw, "key_quotes") {
		if text := getString(item, "text"); text != "" {
			a.KeyQuotes = append(a.KeyQuotes, Quote{Text: text, Speaker: getString(item, "speaker")})
		}
		if len(a.KeyQuotes) == maxKeyQuotes {
			break
		}
	}

	for _, item := range getObjectSlice(raw, "monetary_amounts") {
		a.MonetaryAmounts = append(a.MonetaryAmounts, MonetaryAmount{
			Amount:   getFloat(item, "amount"),
			Currency: getString(item, "currency"),
			Context:  getString(item, "context"),
		})
	}

	for _, item := range getObjectSlice(raw, "entities") {
		name := getString(item, "name")
		entityType := getString(item, "type")
		if name == "" {
			continue
		}
		switch entityType {
		case models.TagPerson, models.TagOrganization, models.TagLocation, models.TagTopic:
		default:
			entityType = models.TagCustom
		}
		a.Entities = append(a.Entities, Entity{Name: name, Type: entityType})
		if len(a.Entities) == maxEntities {
			break
		}
	}

	return a
}

// Complete reports whether the analysis carries enough to enrich an
// article: enrichment is all-or-nothing, so a summary-less or topic-less
// result fails the whole item.
func (a *Analysis) Complete() bool {
	return a != nil && a.Summary != "" && len(a.Topics) > 0 && a.Sentiment != ""
}

func clampBias(score float64) float64 {
	if score < -1.0 {
		return -1.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.SentimentPositive:
		return models.SentimentPositive
	case models.SentimentNegative:
		return models.SentimentNegative
	case models.SentimentMixed:
		return models.SentimentMixed
	case models.SentimentNeutral:
		return models.SentimentNeutral
	default:
		return ""
	}
}

func oneOf(value string, allowed []string, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, v := range allowed {
		if value == v {
			return v
		}
	}
	return fallback
}

func filterVocabulary(values, vocabulary []string) []string {
	var out []string
	for _, v := range values {
		if oneOf(v, vocabulary, "") != "" {
			out = append(out, strings.ToLower(strings.TrimSpace(v)))
		}
	}
	return out
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getStringSlice(m map[string]interface{}, key string) []string {
	items, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func getObjectSlice(m map[string]interface{}, key string) []map[string]interface{} {
	items, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	var out []map[string]interface{}
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

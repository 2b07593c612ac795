package enrich

import (
	"fmt"
	"strings"
)

// ContentBudget is the exact number of characters of article content sent
// to the model. The truncation point is part of the prompt contract: the
// same article must always produce the same prompt.
const ContentBudget = 4000

// TopicVocabulary is the closed set of categories the model may assign.
var TopicVocabulary = []string{
	"politics", "economy", "business", "cricket", "sports", "tourism",
	"education", "health", "crime", "environment", "technology",
	"international", "entertainment",
}

// CrimeTypes is the closed set of crime classifications.
var CrimeTypes = []string{
	"murder", "assault", "robbery", "theft", "fraud", "corruption",
	"drug_trafficking", "sexual_assault", "kidnapping", "cybercrime",
	"smuggling", "other",
}

// PoliticalParties the model should normalize party mentions to.
var PoliticalParties = []string{
	"SLPP", "SJB", "NPP", "JVP", "UNP", "SLFP", "ITAK",
}

// ArticleTypes the model classifies a piece as.
var ArticleTypes = []string{"news", "opinion", "analysis", "interview"}

// TruncateContent cuts article text to the prompt budget, counting
// characters (runes), so Sinhala and Tamil text is never split mid-glyph.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= ContentBudget {
		return content
	}
	return string(runes[:ContentBudget])
}

// AnalysisPrompt builds the bias/entity analysis prompt for one article.
// The model must answer with a single JSON object carrying the exact key
// set described below; parsing stays defensive regardless.
func AnalysisPrompt(title, content string) string {
	var b strings.Builder
	b.WriteString("Analyze this Sri Lankan news article and respond with a single JSON object, no other text.\n\n")
	fmt.Fprintf(&b, "TITLE: %s\n\n", title)
	fmt.Fprintf(&b, "CONTENT: %s\n\n", TruncateContent(content))
	b.WriteString(`Respond with JSON containing exactly these keys:
{
  "summary": "exactly two sentences summarizing the article",
  "topics": ["2-5 values from: ` + strings.Join(TopicVocabulary, ", ") + `"],
  "bias_score": 0.0,
  "sentiment": "positive | negative | neutral | mixed",
  "bias_indicators": ["phrases that justify the bias score; empty list if neutral"],
  "is_original_reporting": true,
  "article_type": "news | opinion | analysis | interview",
  "crime_type": "one of ` + strings.Join(CrimeTypes, ", ") + ` or null",
  "locations": ["place names mentioned"],
  "law_enforcement": ["police/military units mentioned"],
  "police_station": "station name or null",
  "political_party": "one of ` + strings.Join(PoliticalParties, ", ") + ` when applicable, else null",
  "election_info": null,
  "key_people": [{"name": "canonical full name", "role": "their role"}],
  "key_quotes": [{"text": "quote", "speaker": "who said it"}],
  "casualties": null,
  "monetary_amounts": [{"amount": 0, "currency": "LKR", "context": "what it refers to"}],
  "entities": [{"name": "canonical full name", "type": "person | organization | location | topic"}]
}

Rules:
- bias_score is a float in [-1.0, 1.0]: negative = left/opposition-leaning, positive = right/government-leaning, 0 = neutral.
- election_info, when an election is covered, is {"type": ..., "constituency": ..., "result": ..., "votes": ...}.
- casualties, when reported, is {"deaths": 0, "injuries": 0, "description": ...}.
- key_people: at most 5. key_quotes: at most 3. entities: at most 15.
- Use canonical full names: "Ranil Wickremesinghe", never "Ranil" or "the President".
`)
	return b.String()
}

// PersonSummaryPrompt builds the biography prompt from a numbered article
// context. The instruction is fixed: changing it invalidates cached
// descriptions written under the old one.
func PersonSummaryPrompt(name, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based only on the following news coverage, write about %s.\n\n", name)
	b.WriteString(context)
	b.WriteString(`
Write a 150-250 word encyclopedic summary in the third person.
Do not use markdown or bullet points.
Do not open with the subject's name; vary the sentence structure.
Do not speculate beyond the material above.
`)
	return b.String()
}

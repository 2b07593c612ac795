package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// CleanResponse normalizes raw model output before JSON parsing. Two
// stages, in order: drop any <think>...</think> block (reasoning models
// emit them anywhere, including across lines), then strip a leading
// ```json or ``` fence and a trailing ``` fence. Both stages run
// unconditionally and the whole function is idempotent.
func CleanResponse(text string) string {
	text = thinkBlockRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSuffix(text, "```")
	}

	return strings.TrimSpace(text)
}

// ParseJSON parses cleaned model output into a generic map. Malformed
// JSON yields nil rather than an error: a bad response is a failed item,
// and must never abort a batch of otherwise-good ones.
func ParseJSON(text string) map[string]interface{} {
	text = CleanResponse(text)
	if text == "" {
		return nil
	}
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil
	}
	return result
}

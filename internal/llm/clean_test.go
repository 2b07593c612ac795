package llm

import (
	"testing"
)

func TestCleanResponsePlain(t *testing.T) {
	if got := CleanResponse(`{"key": "value"}`); got != `{"key": "value"}` {
		t.Errorf("got %q", got)
	}
}

func TestCleanResponseStripsThinkBlock(t *testing.T) {
	in := "<think>some\nmultiline\nreasoning</think>\n{\"key\": \"value\"}"
	if got := CleanResponse(in); got != `{"key": "value"}` {
		t.Errorf("got %q", got)
	}
}

func TestCleanResponseStripsFences(t *testing.T) {
	in := "```json\n{\"key\": \"value\"}\n```"
	if got := CleanResponse(in); got != `{"key": "value"}` {
		t.Errorf("got %q", got)
	}

	in = "```\n{\"key\": \"value\"}\n```"
	if got := CleanResponse(in); got != `{"key": "value"}` {
		t.Errorf("got %q", got)
	}
}

func TestCleanResponseThinkThenFence(t *testing.T) {
	in := "<think>reasoning</think>\n```json\n{\"bias_score\": 0.1}\n```"
	if got := CleanResponse(in); got != `{"bias_score": 0.1}` {
		t.Errorf("got %q", got)
	}
}

func TestCleanResponseIdempotent(t *testing.T) {
	inputs := []string{
		"<think>r</think>```json\n{\"a\":1}\n```",
		"```\n{\"a\":1}\n```",
		`{"a":1}`,
		"",
		"plain text, no JSON",
	}
	for _, in := range inputs {
		once := CleanResponse(in)
		twice := CleanResponse(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestParseJSON(t *testing.T) {
	result := ParseJSON("```json\n{\"bias_score\": 0.4}\n```")
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result["bias_score"] != 0.4 {
		t.Errorf("bias_score = %v", result["bias_score"])
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if result := ParseJSON("not json at all"); result != nil {
		t.Error("expected nil for malformed JSON")
	}
	if result := ParseJSON(""); result != nil {
		t.Error("expected nil for empty input")
	}
}

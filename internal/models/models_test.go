package models

import (
	"testing"
)

func TestBiasCategory(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{-1.0, BiasLeft},
		{-0.31, BiasLeft},
		{-0.3, BiasCenter}, // boundary maps to center
		{-0.1, BiasCenter},
		{0.0, BiasCenter},
		{0.3, BiasCenter}, // boundary maps to center
		{0.31, BiasRight},
		{1.0, BiasRight},
	}
	for _, tc := range cases {
		if got := BiasCategory(tc.score); got != tc.want {
			t.Errorf("BiasCategory(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestEmbeddingLiteral(t *testing.T) {
	if got := EmbeddingLiteral([]float64{0.5, -1, 0.25}); got != "[0.5,-1,0.25]" {
		t.Errorf("EmbeddingLiteral = %q", got)
	}
	if got := EmbeddingLiteral(nil); got != "" {
		t.Errorf("expected empty literal for empty vector, got %q", got)
	}
}

func TestTagHasGeneratedSummary(t *testing.T) {
	tag := Tag{Description: ""}
	if tag.HasGeneratedSummary() {
		t.Error("empty description should not count as generated")
	}

	tag.Description = string(make([]byte, 50))
	if tag.HasGeneratedSummary() {
		t.Error("50-character description should not count as generated")
	}

	tag.Description = string(make([]byte, 51))
	if !tag.HasGeneratedSummary() {
		t.Error("51-character description should count as generated")
	}
}

package retrieval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-assistant/internal/retrieval"
)

func TestTokenizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"drops short tokens", "go is a language", []string{"language"}},
		{"lowercases", "Tell Me About KUBERNETES", []string{"tell", "about", "kubernetes"}},
		{"splits on punctuation", "what's ada's e-mail?", []string{"what", "ada", "mail"}},
		{"empty", "   ", nil},
		{"only noise", "a to is of", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retrieval.TokenizeQuery(tt.query))
		})
	}
}

func TestLexicalScore(t *testing.T) {
	var ranker retrieval.LexicalRanker
	chunk := retrieval.Chunk{
		ID:      "chunk-0",
		Section: "Project: Glass Breaker",
		Text:    "Project \"Glass Breaker\" (Game): a canvas game.",
	}

	tests := []struct {
		name   string
		tokens []string
		want   float64
	}{
		{"no match", []string{"cooking"}, 0.0},
		{"body-only match", []string{"canvas"}, 1.0},
		{"section match adds half", []string{"glass"}, 1.5},
		{"two section tokens", []string{"glass", "breaker"}, 3.0},
		{"mixed", []string{"glass", "canvas", "cooking"}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranker.Score(chunk, tt.tokens))
		})
	}
}

// Adding a token that occurs in the chunk never decreases its score.
func TestLexicalScore_Monotonic(t *testing.T) {
	var ranker retrieval.LexicalRanker
	chunk := retrieval.Chunk{Section: "Skills – Languages", Text: "Languages skills: Go, Python."}

	base := ranker.Score(chunk, []string{"python"})
	extended := ranker.Score(chunk, []string{"python", "languages"})
	assert.GreaterOrEqual(t, extended, base)
}

// A token in a longer word still counts: substring semantics are part of
// the contract.
func TestLexicalScore_SubstringMatch(t *testing.T) {
	var ranker retrieval.LexicalRanker
	chunk := retrieval.Chunk{Section: "Skills – Data", Text: "Feature categorization and concatenation."}

	assert.Equal(t, 1.0, ranker.Score(chunk, []string{"cat"}))
}

func TestLexicalScore_SectionWeight(t *testing.T) {
	var ranker retrieval.LexicalRanker
	inSection := retrieval.Chunk{Section: "Project: Telemetry", Text: "streaming telemetry ingestion"}
	inBodyOnly := retrieval.Chunk{Section: "Project: Other", Text: "streaming telemetry ingestion"}

	tokens := []string{"telemetry"}
	assert.Greater(t, ranker.Score(inSection, tokens), ranker.Score(inBodyOnly, tokens))
}

func TestLexicalRank_Deterministic(t *testing.T) {
	var ranker retrieval.LexicalRanker
	chunks := retrieval.BuildChunks(testProfile())

	first := ranker.Rank(chunks, "go projects with canvas")
	second := ranker.Rank(chunks, "go projects with canvas")
	require.Equal(t, first, second)
}

func TestLexicalRank_TiesKeepCorpusOrder(t *testing.T) {
	var ranker retrieval.LexicalRanker
	chunks := []retrieval.Chunk{
		{ID: "chunk-0", Section: "One", Text: "shared term"},
		{ID: "chunk-1", Section: "Two", Text: "shared term"},
		{ID: "chunk-2", Section: "Three", Text: "shared term"},
	}

	ranked := ranker.Rank(chunks, "shared")
	require.Len(t, ranked, 3)
	assert.Equal(t, "chunk-0", ranked[0].ID)
	assert.Equal(t, "chunk-1", ranked[1].ID)
	assert.Equal(t, "chunk-2", ranked[2].ID)
}

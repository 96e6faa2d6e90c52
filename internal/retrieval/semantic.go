package retrieval

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// CosineSimilarity returns dot(a,b) / (|a|*|b|) for two vectors of equal
// length. A zero-norm vector yields 0 so a degenerate embedding ranks last
// instead of poisoning the request with NaN. Mismatched lengths are a caller
// error and are rejected before any scoring.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// SemanticRanker orders embedded chunks by cosine similarity to the query
// embedding. Scores are not clamped: the raw value in [-1, 1] is kept.
type SemanticRanker struct{}

func (SemanticRanker) Rank(chunks []EmbeddedChunk, queryEmbedding []float64) ([]ScoredChunk, error) {
	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		score, err := CosineSimilarity(queryEmbedding, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", c.ID, err)
		}
		scored = append(scored, ScoredChunk{Chunk: c.Chunk, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

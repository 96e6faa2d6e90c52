package retrieval

import (
	"regexp"
	"sort"
	"strings"
)

var tokenSplitter = regexp.MustCompile(`\W+`)

// TokenizeQuery lowercases the query, splits it on non-word runs and drops
// tokens of length <= 2 to filter stop-noise ("a", "to", "is").
func TokenizeQuery(query string) []string {
	var tokens []string
	for _, tok := range tokenSplitter.Split(strings.ToLower(query), -1) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// LexicalRanker scores chunks by token overlap: +1.0 for each distinct query
// token found anywhere in the chunk (section or text), plus +0.5 when the
// token also appears in the section label, so a query naming a project title
// surfaces that project's own chunk over one that mentions it in passing.
//
// Matching is substring-based, not word-boundary: "cat" matches "category".
// That imprecision is part of the observable contract; switching to
// word-boundary matching would change ranking behavior.
type LexicalRanker struct{}

func (LexicalRanker) Score(c Chunk, tokens []string) float64 {
	section := strings.ToLower(c.Section)
	body := section + " " + strings.ToLower(c.Text)

	var score float64
	for _, tok := range tokens {
		if strings.Contains(body, tok) {
			score += 1.0
		}
		if strings.Contains(section, tok) {
			score += 0.5
		}
	}
	return score
}

// Rank scores every chunk against the query and returns them ordered by
// descending score. The sort is stable, so ties keep corpus order and the
// ranking is deterministic.
func (r LexicalRanker) Rank(chunks []Chunk, query string) []ScoredChunk {
	tokens := TokenizeQuery(query)

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		scored = append(scored, ScoredChunk{Chunk: c, Score: r.Score(c, tokens)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

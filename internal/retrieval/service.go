package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio-assistant/internal/middleware"
)

type Mode string

const (
	ModeLexical  Mode = "lexical"
	ModeSemantic Mode = "semantic"
)

const DefaultTopK = 5

// FallbackContext is handed to the prompt when retrieval cannot produce a
// usable context block; the generation call proceeds with degraded grounding
// rather than refusing to answer.
const FallbackContext = "Embedded context unavailable."

// lexicalFallbackSize is how many leading corpus chunks stand in for a
// ranked result when no chunk matches the query at all.
const lexicalFallbackSize = 3

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Service is the retrieval orchestrator. Each instance runs exactly one
// scoring strategy, chosen at wiring time by which corpus data is available.
type Service struct {
	mode     Mode
	cache    *CorpusCache
	embedder Embedder
	lexical  LexicalRanker
	semantic SemanticRanker
	logger   *QueryLogger
}

func NewLexicalService(cache *CorpusCache, logger *QueryLogger) *Service {
	return &Service{mode: ModeLexical, cache: cache, logger: logger}
}

func NewSemanticService(cache *CorpusCache, embedder Embedder, logger *QueryLogger) *Service {
	return &Service{mode: ModeSemantic, cache: cache, embedder: embedder, logger: logger}
}

func (s *Service) Mode() Mode { return s.mode }

// Retrieve ranks the corpus against the query and returns at most topK
// chunks, each at most once. In lexical mode only positively scored chunks
// are returned, with the first corpus chunks standing in when nothing
// matches; in semantic mode the top chunks are returned regardless of sign.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	corpus, err := s.cache.Get()
	if err != nil {
		return nil, err
	}

	if s.mode == ModeSemantic {
		return s.retrieveSemantic(ctx, corpus, query, topK)
	}
	return s.retrieveLexical(corpus, query, topK), nil
}

func (s *Service) retrieveLexical(corpus *Corpus, query string, topK int) []ScoredChunk {
	ranked := s.lexical.Rank(corpus.Chunks, query)

	selected := make([]ScoredChunk, 0, topK)
	seen := make(map[string]bool, topK)
	for _, sc := range ranked {
		if sc.Score <= 0 || len(selected) >= topK {
			break
		}
		if seen[sc.ID] {
			continue
		}
		seen[sc.ID] = true
		selected = append(selected, sc)
	}
	if len(selected) > 0 {
		return selected
	}

	// Off-topic or malformed query: serve the leading chunks so the
	// assistant still has some grounding to answer from.
	n := lexicalFallbackSize
	if n > topK {
		n = topK
	}
	if n > len(corpus.Chunks) {
		n = len(corpus.Chunks)
	}
	for _, c := range corpus.Chunks[:n] {
		selected = append(selected, ScoredChunk{Chunk: c})
	}
	return selected
}

func (s *Service) retrieveSemantic(ctx context.Context, corpus *Corpus, query string, topK int) ([]ScoredChunk, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("embed query: empty embedding")
	}

	ranked, err := s.semantic.Rank(corpus.Embedded, vec)
	if err != nil {
		return nil, err
	}

	selected := make([]ScoredChunk, 0, topK)
	seen := make(map[string]bool, topK)
	for _, sc := range ranked {
		if len(selected) >= topK {
			break
		}
		if seen[sc.ID] {
			continue
		}
		seen[sc.ID] = true
		selected = append(selected, sc)
	}
	return selected, nil
}

// RetrieveContext returns the formatted context block for prompt
// interpolation. Retrieval failures degrade to the fixed fallback string;
// they never fail the request.
func (s *Service) RetrieveContext(ctx context.Context, query string, topK int) string {
	start := time.Now()
	entry := QueryLogEntry{
		Query:         query,
		Mode:          string(s.mode),
		CorrelationID: middleware.GetCorrelationID(ctx),
	}
	defer func() {
		entry.Duration = time.Since(start)
		if s.logger != nil {
			s.logger.Log(entry)
		}
	}()

	scored, err := s.Retrieve(ctx, query, topK)
	if err != nil || len(scored) == 0 {
		if err != nil {
			slog.WarnContext(ctx, "retrieval degraded to fallback context", "mode", s.mode, "error", err)
		}
		entry.Fallback = true
		return FallbackContext
	}

	entry.NumResults = len(scored)
	return FormatContext(scored)
}

// FormatContext joins chunks as "[section]\ntext" blocks separated by blank
// lines. Chunk text is never truncated here; length limits are the
// generation client's concern.
func FormatContext(chunks []ScoredChunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("[")
		b.WriteString(c.Section)
		b.WriteString("]\n")
		b.WriteString(c.Text)
	}
	return b.String()
}

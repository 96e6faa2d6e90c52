package retrieval

// Chunk is one atomic, self-contained unit of retrievable text derived from
// a single profile entity. Chunks are immutable once built; the corpus is
// rebuilt from source data, never edited in place.
type Chunk struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Text    string `json:"text"`
}

// EmbeddedChunk pairs a chunk with its precomputed embedding vector. The
// vectors are produced out-of-band by the embedgen batch job and persisted
// for reuse across requests.
type EmbeddedChunk struct {
	Chunk
	Embedding []float64 `json:"embedding"`
}

// ScoredChunk carries a per-query relevance score. It lives for one
// retrieval call and is never persisted.
type ScoredChunk struct {
	Chunk
	Score float64
}

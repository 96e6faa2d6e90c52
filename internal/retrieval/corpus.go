package retrieval

import (
	"errors"
	"sync"

	"portfolio-assistant/internal/profile"
)

var ErrCorpusUnavailable = errors.New("corpus unavailable")

// Corpus is the full ordered collection of chunks available for retrieval.
// Exactly one of the two slices is populated, depending on the mode the
// service was wired with.
type Corpus struct {
	Chunks   []Chunk
	Embedded []EmbeddedChunk
}

// CorpusLoader builds a corpus from its source data. Loaders must be pure:
// two calls over unchanged source data produce equal corpora.
type CorpusLoader func() (*Corpus, error)

// CorpusCache lazily builds the corpus on first use and reuses it for the
// process lifetime. The corpus is read-only after construction, so
// concurrent first requests may build it redundantly; that is harmless
// (identical result, last write wins) and avoids holding a lock across the
// build. Invalidate forces a rebuild, which tests use to inject fresh data.
type CorpusCache struct {
	mu     sync.RWMutex
	load   CorpusLoader
	corpus *Corpus
}

func NewCorpusCache(load CorpusLoader) *CorpusCache {
	return &CorpusCache{load: load}
}

func (c *CorpusCache) Get() (*Corpus, error) {
	c.mu.RLock()
	cached := c.corpus
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	corpus, err := c.load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.corpus = corpus
	c.mu.Unlock()
	return corpus, nil
}

func (c *CorpusCache) Invalidate() {
	c.mu.Lock()
	c.corpus = nil
	c.mu.Unlock()
}

// ProfileLoader builds a lexical corpus from the profile JSON at path.
func ProfileLoader(path string) CorpusLoader {
	return func() (*Corpus, error) {
		p, err := profile.Load(path)
		if err != nil {
			return nil, errors.Join(ErrCorpusUnavailable, err)
		}
		return &Corpus{Chunks: BuildChunks(p)}, nil
	}
}

// EmbeddingsLoader builds a semantic corpus from the persisted embeddings
// file at path.
func EmbeddingsLoader(path string) CorpusLoader {
	return func() (*Corpus, error) {
		embedded, err := LoadEmbeddedChunks(path)
		if err != nil {
			return nil, err
		}
		return &Corpus{Embedded: embedded}, nil
	}
}

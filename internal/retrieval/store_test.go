package retrieval_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-assistant/internal/retrieval"
)

func writeEmbeddings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "embeddings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmbeddedChunks(t *testing.T) {
	path := writeEmbeddings(t, `[
	  {"id": "chunk-0", "section": "Personal", "text": "Name: Ada.", "embedding": [0.1, 0.2]},
	  {"id": "chunk-1", "section": "Skills", "text": "Go.", "embedding": [0.3, 0.4]}
	]`)

	chunks, err := retrieval.LoadEmbeddedChunks(path)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "chunk-0", chunks[0].ID)
	assert.Equal(t, []float64{0.1, 0.2}, chunks[0].Embedding)
}

func TestLoadEmbeddedChunks_SkipsMalformedRecords(t *testing.T) {
	path := writeEmbeddings(t, `[
	  {"id": "chunk-0", "section": "Personal", "text": "ok", "embedding": [0.1, 0.2]},
	  {"id": "chunk-1", "section": "", "text": "no section", "embedding": [0.1, 0.2]},
	  {"id": "chunk-2", "section": "Skills", "text": "", "embedding": [0.1, 0.2]},
	  {"id": "chunk-3", "section": "Projects", "text": "missing vector"},
	  {"id": "chunk-4", "section": "Work", "text": "wrong dims", "embedding": [0.1, 0.2, 0.3]},
	  {"id": "chunk-5", "section": "Cooking", "text": "ok too", "embedding": [0.5, 0.6]}
	]`)

	chunks, err := retrieval.LoadEmbeddedChunks(path)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "chunk-0", chunks[0].ID)
	assert.Equal(t, "chunk-5", chunks[1].ID)
}

func TestLoadEmbeddedChunks_AllMalformed(t *testing.T) {
	path := writeEmbeddings(t, `[{"id": "chunk-0", "section": "", "text": "", "embedding": []}]`)

	_, err := retrieval.LoadEmbeddedChunks(path)
	assert.ErrorIs(t, err, retrieval.ErrCorpusUnavailable)
}

func TestLoadEmbeddedChunks_MissingFile(t *testing.T) {
	_, err := retrieval.LoadEmbeddedChunks(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, retrieval.ErrCorpusUnavailable)
}

func TestLoadEmbeddedChunks_InvalidJSON(t *testing.T) {
	path := writeEmbeddings(t, "{broken")
	_, err := retrieval.LoadEmbeddedChunks(path)
	assert.ErrorIs(t, err, retrieval.ErrCorpusUnavailable)
}

func TestSaveEmbeddedChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "embeddings.json")
	in := []retrieval.EmbeddedChunk{
		{Chunk: retrieval.Chunk{ID: "chunk-0", Section: "Personal", Text: "Name: Ada."}, Embedding: []float64{0.1, 0.2}},
	}

	require.NoError(t, retrieval.SaveEmbeddedChunks(path, in))

	// No temp file left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	out, err := retrieval.LoadEmbeddedChunks(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

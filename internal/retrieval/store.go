package retrieval

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadEmbeddedChunks reads the persisted {chunk, embedding} records produced
// by the embedgen batch job. Records with an empty section, empty text,
// missing embedding or an embedding whose dimension disagrees with the rest
// of the file are dropped with a warning rather than failing the load; a
// single bad record should cost one chunk, not semantic retrieval entirely.
// Only a file with no usable records at all is an error.
func LoadEmbeddedChunks(path string) ([]EmbeddedChunk, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Join(ErrCorpusUnavailable, err)
	}

	var records []EmbeddedChunk
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Join(ErrCorpusUnavailable, fmt.Errorf("parse embeddings: %w", err))
	}

	dimension := 0
	chunks := make([]EmbeddedChunk, 0, len(records))
	for _, rec := range records {
		if rec.Section == "" || rec.Text == "" || len(rec.Embedding) == 0 {
			slog.Warn("skipping malformed embedded chunk", "id", rec.ID, "path", path)
			continue
		}
		if dimension == 0 {
			dimension = len(rec.Embedding)
		}
		if len(rec.Embedding) != dimension {
			slog.Warn("skipping embedded chunk with mismatched dimension",
				"id", rec.ID, "got", len(rec.Embedding), "want", dimension)
			continue
		}
		chunks = append(chunks, rec)
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no usable embedded chunks in %s", ErrCorpusUnavailable, path)
	}
	return chunks, nil
}

// SaveEmbeddedChunks persists the embedded corpus. The write goes through a
// temp file and rename so a crash mid-write never leaves a truncated file
// for the server to load.
func SaveEmbeddedChunks(path string, chunks []EmbeddedChunk) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

package worker

import (
	"context"
	"log/slog"
	"time"

	"portfolio-assistant/internal/retrieval"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbedJob is the out-of-band batch that turns a chunk corpus into embedded
// chunks. It runs sequentially with a fixed pause between chunks to stay
// under free-tier rate limits. A chunk whose embedding call fails gets one
// retry after a longer pause; if that also fails the chunk is skipped and
// the batch continues — a single bad chunk must not abort the run.
type EmbedJob struct {
	embedder   Embedder
	pacing     time.Duration
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewEmbedJob(embedder Embedder, pacing, retryDelay time.Duration) *EmbedJob {
	return &EmbedJob{
		embedder:   embedder,
		pacing:     pacing,
		retryDelay: retryDelay,
		sleep:      sleepWithContext,
	}
}

// WithSleep overrides the delay function. For tests.
func (j *EmbedJob) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *EmbedJob {
	j.sleep = sleep
	return j
}

func (j *EmbedJob) Run(ctx context.Context, chunks []retrieval.Chunk) ([]retrieval.EmbeddedChunk, error) {
	embedded := make([]retrieval.EmbeddedChunk, 0, len(chunks))

	for i, chunk := range chunks {
		slog.Info("embedding chunk", "index", i+1, "total", len(chunks), "section", chunk.Section)

		vec, err := j.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			slog.Warn("embedding failed, retrying once", "id", chunk.ID, "error", err)
			if serr := j.sleep(ctx, j.retryDelay); serr != nil {
				return embedded, serr
			}
			vec, err = j.embedder.Embed(ctx, chunk.Text)
		}
		if err != nil {
			slog.Error("retry failed, skipping chunk", "id", chunk.ID, "error", err)
			continue
		}

		embedded = append(embedded, retrieval.EmbeddedChunk{Chunk: chunk, Embedding: vec})

		if i < len(chunks)-1 {
			if err := j.sleep(ctx, j.pacing); err != nil {
				return embedded, err
			}
		}
	}

	return embedded, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

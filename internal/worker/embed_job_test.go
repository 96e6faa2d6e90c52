package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-assistant/internal/retrieval"
	"portfolio-assistant/internal/worker"
)

type scriptedEmbedder struct {
	calls   []string
	results map[string][]error // per text, popped per call; nil entry means success
	vector  []float64
}

func (e *scriptedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls = append(e.calls, text)
	queue := e.results[text]
	if len(queue) == 0 {
		return e.vector, nil
	}
	err := queue[0]
	e.results[text] = queue[1:]
	if err != nil {
		return nil, err
	}
	return e.vector, nil
}

func noSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func testChunks() []retrieval.Chunk {
	return []retrieval.Chunk{
		{ID: "chunk-0", Section: "Personal", Text: "alpha"},
		{ID: "chunk-1", Section: "Skills", Text: "beta"},
		{ID: "chunk-2", Section: "Projects", Text: "gamma"},
	}
}

func TestEmbedJob_AllSucceed(t *testing.T) {
	embedder := &scriptedEmbedder{vector: []float64{0.1, 0.2}}
	var delays []time.Duration
	job := worker.NewEmbedJob(embedder, 500*time.Millisecond, 2*time.Second).
		WithSleep(noSleep(&delays))

	embedded, err := job.Run(context.Background(), testChunks())
	require.NoError(t, err)
	require.Len(t, embedded, 3)
	assert.Equal(t, "chunk-0", embedded[0].ID)
	assert.Equal(t, []float64{0.1, 0.2}, embedded[0].Embedding)

	// Paced between chunks, not after the last one.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, delays)
}

func TestEmbedJob_RetriesOnceThenRecovers(t *testing.T) {
	embedder := &scriptedEmbedder{
		vector:  []float64{0.1},
		results: map[string][]error{"beta": {errors.New("throttled"), nil}},
	}
	var delays []time.Duration
	job := worker.NewEmbedJob(embedder, 500*time.Millisecond, 2*time.Second).
		WithSleep(noSleep(&delays))

	embedded, err := job.Run(context.Background(), testChunks())
	require.NoError(t, err)
	assert.Len(t, embedded, 3)

	// alpha, beta (fail), beta (retry), gamma
	assert.Equal(t, []string{"alpha", "beta", "beta", "gamma"}, embedder.calls)
	// pacing, retry delay, pacing
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 2 * time.Second, 500 * time.Millisecond}, delays)
}

// A chunk that fails twice is skipped; the batch carries on.
func TestEmbedJob_SkipsChunkAfterFailedRetry(t *testing.T) {
	embedder := &scriptedEmbedder{
		vector:  []float64{0.1},
		results: map[string][]error{"beta": {errors.New("down"), errors.New("still down")}},
	}
	var delays []time.Duration
	job := worker.NewEmbedJob(embedder, 0, 0).WithSleep(noSleep(&delays))

	embedded, err := job.Run(context.Background(), testChunks())
	require.NoError(t, err)
	require.Len(t, embedded, 2)
	assert.Equal(t, "chunk-0", embedded[0].ID)
	assert.Equal(t, "chunk-2", embedded[1].ID)
}

func TestEmbedJob_StopsOnCancelledContext(t *testing.T) {
	embedder := &scriptedEmbedder{vector: []float64{0.1}}
	job := worker.NewEmbedJob(embedder, time.Second, time.Second).
		WithSleep(func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		})

	embedded, err := job.Run(context.Background(), testChunks())
	assert.ErrorIs(t, err, context.Canceled)
	// The first chunk embedded before the pacing sleep aborted the run.
	assert.Len(t, embedded, 1)
}

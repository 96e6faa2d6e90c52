// Command embedgen is the out-of-band batch job behind semantic retrieval:
// it builds the chunk corpus from the profile, embeds every chunk via the
// Gemini embedding API and persists the {chunk, embedding} records for the
// server to load.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-assistant/internal/adapter/gemini"
	"portfolio-assistant/internal/config"
	"portfolio-assistant/internal/profile"
	"portfolio-assistant/internal/retrieval"
	"portfolio-assistant/internal/worker"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		os.Exit(1)
	}

	chunks := retrieval.BuildChunks(p)
	slog.Info("corpus built", "chunks", len(chunks))

	embedder, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	if err != nil {
		slog.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	defer embedder.Close()

	job := worker.NewEmbedJob(embedder,
		time.Duration(cfg.EmbedPacingMs)*time.Millisecond,
		time.Duration(cfg.EmbedRetryDelayMs)*time.Millisecond)

	embedded, err := job.Run(ctx, chunks)
	if err != nil {
		slog.Error("embedding batch aborted", "error", err, "embedded", len(embedded))
		os.Exit(1)
	}

	if err := retrieval.SaveEmbeddedChunks(cfg.EmbeddingsPath, embedded); err != nil {
		slog.Error("failed to persist embeddings", "error", err)
		os.Exit(1)
	}

	slog.Info("embeddings written", "path", cfg.EmbeddingsPath,
		"embedded", len(embedded), "skipped", len(chunks)-len(embedded))
}

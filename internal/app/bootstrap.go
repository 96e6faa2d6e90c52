package app

import (
	"context"
	"log/slog"
	"os"

	"portfolio-assistant/features/chat"
	"portfolio-assistant/internal/adapter/gemini"
	"portfolio-assistant/internal/config"
	"portfolio-assistant/internal/llm"
	"portfolio-assistant/internal/profile"
	"portfolio-assistant/internal/prompt"
	"portfolio-assistant/internal/retrieval"
)

// Bootstrap wires the chat service from config: query logger, retrieval
// service in the selected mode, prompt assembler and the retrying
// generation client.
//
// Mode "auto" probes the embeddings file once: if it yields a usable corpus
// the service runs semantic scoring, otherwise it falls back to lexical
// scoring over chunks built from the profile. A corpus that later turns out
// to be unreadable does not fail requests; retrieval degrades to the
// fallback context per request.
func Bootstrap(ctx context.Context, cfg *config.Config) (*chat.Service, error) {
	queryLogger, err := retrieval.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = retrieval.NewQueryLogger(os.Stdout)
	}

	retrievalService, err := buildRetrieval(ctx, cfg, queryLogger)
	if err != nil {
		return nil, err
	}
	slog.Info("retrieval configured", "mode", retrievalService.Mode())

	ownerName := "the site owner"
	if p, err := profile.Load(cfg.ProfilePath); err == nil {
		ownerName = p.Personal.Name
	} else {
		slog.Warn("profile unavailable, assistant persona uses a generic owner name", "error", err)
	}

	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	llmClient := llm.NewClient(generator, cfg.GenerationModels, gemini.IsRateLimited)

	assembler := prompt.NewAssembler(ownerName)
	return chat.NewService(retrievalService, assembler, llmClient, cfg.RetrievalTopK), nil
}

func buildRetrieval(ctx context.Context, cfg *config.Config, logger *retrieval.QueryLogger) (*retrieval.Service, error) {
	semantic := func() (*retrieval.Service, error) {
		embedder, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		cache := retrieval.NewCorpusCache(retrieval.EmbeddingsLoader(cfg.EmbeddingsPath))
		return retrieval.NewSemanticService(cache, embedder, logger), nil
	}
	lexical := func() (*retrieval.Service, error) {
		cache := retrieval.NewCorpusCache(retrieval.ProfileLoader(cfg.ProfilePath))
		return retrieval.NewLexicalService(cache, logger), nil
	}

	switch cfg.RetrievalMode {
	case config.ModeSemantic:
		return semantic()
	case config.ModeLexical:
		return lexical()
	default:
		if _, err := retrieval.LoadEmbeddedChunks(cfg.EmbeddingsPath); err == nil {
			return semantic()
		}
		slog.Info("embeddings file not usable, selecting lexical retrieval", "path", cfg.EmbeddingsPath)
		return lexical()
	}
}

package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

// Retrieval modes. Auto picks semantic when the embeddings file is usable
// and falls back to lexical scoring over the profile otherwise.
const (
	ModeAuto     = "auto"
	ModeLexical  = "lexical"
	ModeSemantic = "semantic"
)

type Config struct {
	ServerPort int `envconfig:"SERVER_PORT" default:"8081"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	ProfilePath    string `envconfig:"PROFILE_PATH" default:"data/portfolio.json"`
	EmbeddingsPath string `envconfig:"EMBEDDINGS_PATH" default:"data/embeddings.json"`
	QueryLogPath   string `envconfig:"QUERY_LOG_PATH" default:"data/logs/query.log"`

	RetrievalMode string `envconfig:"RETRIEVAL_MODE" default:"auto"`
	RetrievalTopK int    `envconfig:"RETRIEVAL_TOP_K" default:"5"`

	EmbeddingModel   string   `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
	GenerationModels []string `envconfig:"GENERATION_MODELS" default:"gemini-2.5-flash,gemini-2.0-flash-lite"`

	// Embedgen batch job pacing. The pause between chunks keeps the free
	// tier from throttling; the retry delay is the wait before the single
	// per-chunk retry.
	EmbedPacingMs     int `envconfig:"EMBED_PACING_MS" default:"500"`
	EmbedRetryDelayMs int `envconfig:"EMBED_RETRY_DELAY_MS" default:"2000"`
}

func Load() (*Config, error) {
	// Env vars may be set in the shell instead; ignore a missing .env
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
	}
	if len(c.GenerationModels) == 0 {
		return fmt.Errorf("%w: GENERATION_MODELS", ErrMissingRequired)
	}
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.RetrievalTopK)
	}
	switch c.RetrievalMode {
	case ModeAuto, ModeLexical, ModeSemantic:
	default:
		return fmt.Errorf("invalid RETRIEVAL_MODE %q", c.RetrievalMode)
	}
	return nil
}

package gemini

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Generator struct {
	client *genai.Client
}

func NewGenerator(ctx context.Context, apiKey string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Generator{client: client}, nil
}

// Generate runs one generation call against the named model and returns the
// concatenated text parts of the first candidate.
func (g *Generator) Generate(ctx context.Context, model, prompt string) (string, error) {
	slog.DebugContext(ctx, "generating content", "model", model, "prompt_length", len(prompt))

	m := g.client.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("generation response carried no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", errors.New("generation response carried no text parts")
	}
	return out, nil
}

func (g *Generator) Close() error {
	return g.client.Close()
}

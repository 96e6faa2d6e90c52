package chat

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyMessage rejects blank or whitespace-only visitor messages before
// any retrieval work happens.
var ErrEmptyMessage = errors.New("empty message")

type Retriever interface {
	RetrieveContext(ctx context.Context, query string, topK int) string
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Assembler interface {
	Assemble(contextBlock, message string) string
}

// Service answers one visitor message: retrieve context, assemble the
// prompt, generate. Every request is independent; no transcript state is
// kept server-side.
type Service struct {
	retriever Retriever
	assembler Assembler
	generator Generator
	topK      int
}

func NewService(r Retriever, a Assembler, g Generator, topK int) *Service {
	return &Service{retriever: r, assembler: a, generator: g, topK: topK}
}

func (s *Service) Answer(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	contextBlock := s.retriever.RetrieveContext(ctx, message, s.topK)
	prompt := s.assembler.Assemble(contextBlock, message)
	return s.generator.Generate(ctx, prompt)
}

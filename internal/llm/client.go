package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrQuotaExhausted is returned when every candidate model's retry budget is
// spent on rate limiting.
var ErrQuotaExhausted = errors.New("generation quota exhausted")

const (
	maxAttemptsPerModel = 3
	initialBackoff      = time.Second
)

type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// SleepFunc waits for d or until ctx is done, whichever comes first. Tests
// substitute a recording fake so the backoff schedule is assertable without
// real timers.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client walks a prioritized model list. Each model gets up to three
// attempts; a rate-limit failure backs off (1s, then doubling) and retries
// the same model, while any other failure abandons that model immediately
// and advances to the next. The bounded attempt count guarantees
// termination, and the context-aware sleep stops timers when the caller
// abandons the request.
type Client struct {
	gen         Generator
	models      []string
	isRateLimit func(error) bool
	sleep       SleepFunc
}

func NewClient(gen Generator, models []string, isRateLimit func(error) bool) *Client {
	return &Client{
		gen:         gen,
		models:      models,
		isRateLimit: isRateLimit,
		sleep:       sleepWithContext,
	}
}

// WithSleep overrides the delay function. For tests.
func (c *Client) WithSleep(sleep SleepFunc) *Client {
	c.sleep = sleep
	return c
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	sawRateLimit := false

	for _, model := range c.models {
		delay := initialBackoff
		for attempt := 1; attempt <= maxAttemptsPerModel; attempt++ {
			text, err := c.gen.Generate(ctx, model, prompt)
			if err == nil {
				return text, nil
			}
			lastErr = err

			if !c.isRateLimit(err) {
				slog.WarnContext(ctx, "model failed, advancing to next candidate",
					"model", model, "attempt", attempt, "error", err)
				break
			}

			sawRateLimit = true
			slog.WarnContext(ctx, "rate limited, backing off",
				"model", model, "attempt", attempt, "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
			delay *= 2
		}
	}

	if lastErr == nil {
		return "", fmt.Errorf("%w: no models configured", ErrQuotaExhausted)
	}
	if sawRateLimit {
		return "", fmt.Errorf("%w: %s", ErrQuotaExhausted, lastErr)
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
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

// Package generation drives a single topic through the content generation
// collaborator: prompt construction, bounded retries with backoff, response
// parsing, and output cleaning.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

// Config tunes one orchestrator instance.
type Config struct {
	MaxRetries   int
	BackoffBase  time.Duration
	BackoffCap   time.Duration
	MinWordCount int
	Temperature  float64
	MaxTokens    int
}

// DefaultConfig mirrors the production defaults: 2 retries after the first
// attempt, 2s base backoff capped at 10s.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   2,
		BackoffBase:  2 * time.Second,
		BackoffCap:   10 * time.Second,
		MinWordCount: 1200,
		Temperature:  0.7,
		MaxTokens:    4096,
	}
}

// RetryFunc observes each retry before its backoff sleep.
type RetryFunc func(attempt int, wait time.Duration, err error)

// Orchestrator generates one article per call. Safe for concurrent use; all
// per-call state lives on the stack.
type Orchestrator struct {
	chat   ports.ChatService
	cfg    Config
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New wires a generation orchestrator.
func New(chat ports.ChatService, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{chat: chat, cfg: cfg, logger: logger, sleep: sleepContext}
}

// Generate runs the attempt loop for a single topic. onRetry, when non-nil,
// fires once per retry with the wait that is about to happen. Failures
// exhaust into one aggregated error carrying the last underlying cause.
func (o *Orchestrator) Generate(ctx context.Context, topic domain.ScoredTopic, existingTitles []string, onRetry RetryFunc) (*domain.GeneratedArticleData, error) {
	messages := BuildMessages(topic, existingTitles, o.cfg.MinWordCount)
	opts := ports.ChatOptions{Temperature: o.cfg.Temperature, MaxTokens: o.cfg.MaxTokens}

	attempts := o.cfg.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := o.backoff(attempt - 1)
			if onRetry != nil {
				onRetry(attempt, wait, lastErr)
			}
			o.logger.Warn("generation attempt failed, retrying",
				"topic", topic.Title, "attempt", attempt, "wait", wait, "error", lastErr)
			if err := o.sleep(ctx, wait); err != nil {
				return nil, domain.NewGenerationError(domain.ErrContentGenerationFailed,
					"generation interrupted while waiting to retry", err)
			}
		}

		raw, err := o.chat.Chat(ctx, messages, opts)
		if err != nil {
			if terminal := terminalChatError(err); terminal != nil {
				return nil, terminal
			}
			lastErr = err
			continue
		}

		outcome := Parse(raw)
		if outcome.Kind == Unrecoverable {
			lastErr = outcome.Err
			continue
		}
		if outcome.Kind == FallbackExtracted {
			o.logger.Warn("structured parse failed, recovered via field extraction", "topic", topic.Title)
		}

		article := outcome.Article
		Clean(article, topic)

		// Word count is a soft check: warn below 80% of the target but never
		// fail the attempt.
		words := WordCount(article.Content)
		if float64(words) < 0.8*float64(o.cfg.MinWordCount) {
			o.logger.Warn("generated article below word target",
				"topic", topic.Title, "words", words, "minimum", o.cfg.MinWordCount)
		}

		return article, nil
	}

	return nil, domain.NewGenerationError(domain.ErrContentGenerationFailed,
		fmt.Sprintf("content generation failed after %d attempts", attempts), lastErr,
		"verify the generation service API key and model",
		"try again with a different topic")
}

func (o *Orchestrator) backoff(attempt int) time.Duration {
	wait := o.cfg.BackoffBase << attempt
	if wait > o.cfg.BackoffCap || wait <= 0 {
		return o.cfg.BackoffCap
	}
	return wait
}

// terminalChatError returns a failure that retrying cannot fix, or nil.
func terminalChatError(err error) *domain.GenerationError {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Code {
		case domain.ErrRateLimitExceeded, domain.ErrUnauthorized:
			return genErr
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

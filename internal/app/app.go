// Package app assembles configuration, infrastructure, and use cases into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"ArticleForge/internal/classify"
	"ArticleForge/internal/config"
	"ArticleForge/internal/dedup"
	"ArticleForge/internal/domain"
	"ArticleForge/internal/generation"
	"ArticleForge/internal/infrastructure/exa"
	"ArticleForge/internal/infrastructure/llm"
	"ArticleForge/internal/infrastructure/scheduler"
	"ArticleForge/internal/infrastructure/scrape"
	"ArticleForge/internal/infrastructure/storage"
	"ArticleForge/internal/infrastructure/thumbnail"
	"ArticleForge/internal/infrastructure/webhook"
	"ArticleForge/internal/logging"
	"ArticleForge/internal/planner"
	"ArticleForge/internal/ports"
	"ArticleForge/internal/progress"
	"ArticleForge/internal/scoring"
	"ArticleForge/internal/search"
	"ArticleForge/internal/selection"
	"ArticleForge/internal/similarity"
	"ArticleForge/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance. Extra progress listeners are
// registered alongside the default slog listener.
func New(cfg config.Config, baseLogger *slog.Logger, listeners ...progress.Listener) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	stopWords := cfg.Similarity.StopWordSet()
	store := storage.NewPostgresStore(db, stopWords)

	chatClient := llm.NewClient(cfg.Chat)

	registry := search.NewRegistry()
	registry.Register(exa.NewClient(cfg.Search.Endpoint, cfg.Search.APIKey))
	provider, err := registry.Resolve(cfg.Search.Provider)
	if err != nil {
		return nil, err
	}

	var queryPlanner *planner.Planner
	if cfg.Planner.Enabled {
		queryPlanner = planner.New(chatClient, cfg.Planner.QueryCount,
			baseLogger.With("component", "planner"))
	}

	generator := generation.New(chatClient, generation.Config{
		MaxRetries:   cfg.Generation.MaxRetries,
		BackoffBase:  millis(cfg.Generation.BackoffMS),
		BackoffCap:   millis(cfg.Generation.BackoffCapMS),
		MinWordCount: cfg.Generation.MinWordCount,
		Temperature:  cfg.Generation.Temperature,
		MaxTokens:    cfg.Generation.MaxTokens,
	}, baseLogger.With("component", "generation"))

	selector := selection.Selector{
		Dedup: dedup.New(cfg.Similarity.Threshold, similarity.Weights{
			Keyword: cfg.Similarity.KeywordWeight,
			Bigram:  cfg.Similarity.BigramWeight,
		}, stopWords),
		Weights: scoring.Weights{
			Relevance: cfg.Scoring.RelevanceWeight,
			Recency:   cfg.Scoring.RecencyWeight,
		},
		Dictionary: dictionary(cfg.Categories),
	}

	var notifier ports.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewNotifier(cfg.Webhook.URL)
	}

	emitter := progress.NewEmitter(progress.SlogListener(baseLogger.With("component", "pipeline")))
	for _, l := range listeners {
		emitter.Subscribe(l)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Store:            store,
		Generator:        generator,
		Selector:         selector,
		Thumbnails:       thumbnail.NewProvider(cfg.Thumbnails.ByCategory, cfg.Thumbnails.Default),
		Enricher:         scrape.NewExtractor(nil, baseLogger.With("component", "scrape")),
		Notifier:         notifier,
		Search:           provider,
		Planner:          queryPlanner,
		Progress:         emitter,
		Logger:           baseLogger.With("component", "pipeline"),
		FingerprintLimit: cfg.Similarity.CheckLimit,
		SearchLimit:      cfg.Search.ResultLimit,
		Publish:          cfg.Publish,
	})

	app := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		db:       db,
		pipeline: pipeline,
	}

	if cfg.Scheduler.Enabled {
		driver := scheduler.NewTickerScheduler(cfg.Scheduler.IntervalDuration())
		app.scheduler = usecase.NewScheduler(driver, pipeline, cfg.Scheduler.Hints,
			baseLogger.With("component", "scheduler"))
	}

	return app, nil
}

// RunOnce executes a single generation run for the given topic hint.
func (a *Application) RunOnce(ctx context.Context, hint string) (*domain.StoredArticle, error) {
	return a.pipeline.RunFromQuery(ctx, hint)
}

// StartScheduler begins recurring runs; a no-op when scheduling is disabled.
func (a *Application) StartScheduler(ctx context.Context) error {
	if a.scheduler == nil {
		return fmt.Errorf("scheduler is disabled in configuration")
	}
	return a.scheduler.Start(ctx)
}

// Close releases held resources.
func (a *Application) Close(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			a.logger.Warn("scheduler stop failed", "error", err)
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func dictionary(cfg config.CategoriesConfig) classify.Dictionary {
	dict := classify.Dictionary{Default: cfg.Default}
	for _, entry := range cfg.Entries {
		dict.Categories = append(dict.Categories, classify.Category{
			Name:     entry.Name,
			Keywords: entry.Keywords,
		})
	}
	return dict
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

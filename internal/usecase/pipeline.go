package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ArticleForge/internal/dedup"
	"ArticleForge/internal/domain"
	"ArticleForge/internal/generation"
	"ArticleForge/internal/planner"
	"ArticleForge/internal/ports"
	"ArticleForge/internal/progress"
	"ArticleForge/internal/selection"
)

// Stage percentages reported through the progress emitter. Monotonic across
// a run; retries re-report the generating stage.
const (
	pctLoading    = 5
	pctValidating = 10
	pctSelecting  = 30
	pctGenerating = 50
	pctSaving     = 80
	pctFinalizing = 90
	pctComplete   = 100
)

// PipelineDeps wires all collaborators into the coordinator. Store and
// Generator are required; everything else is optional.
type PipelineDeps struct {
	Store            ports.ArticleStore
	Generator        *generation.Orchestrator
	Selector         selection.Selector
	Thumbnails       ports.ThumbnailProvider
	Enricher         ports.ContentEnricher
	Notifier         ports.Notifier
	Search           ports.SearchProvider
	Planner          *planner.Planner
	Progress         *progress.Emitter
	Logger           *slog.Logger
	FingerprintLimit int
	SearchLimit      int
	Publish          bool
}

// Pipeline coordinates one article generation run end to end. Each
// invocation is an independent sequential flow; instances share no mutable
// state and may run concurrently.
type Pipeline struct {
	store            ports.ArticleStore
	generator        *generation.Orchestrator
	selector         selection.Selector
	thumbnails       ports.ThumbnailProvider
	enricher         ports.ContentEnricher
	notifier         ports.Notifier
	search           ports.SearchProvider
	planner          *planner.Planner
	progress         *progress.Emitter
	logger           *slog.Logger
	fingerprintLimit int
	searchLimit      int
	publish          bool
}

// NewPipeline constructs the coordinator.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fingerprintLimit := deps.FingerprintLimit
	if fingerprintLimit <= 0 {
		fingerprintLimit = dedup.DefaultCheckLimit
	}
	searchLimit := deps.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &Pipeline{
		store:            deps.Store,
		generator:        deps.Generator,
		selector:         deps.Selector,
		thumbnails:       deps.Thumbnails,
		enricher:         deps.Enricher,
		notifier:         deps.Notifier,
		search:           deps.Search,
		planner:          deps.Planner,
		progress:         deps.Progress,
		logger:           logger,
		fingerprintLimit: fingerprintLimit,
		searchLimit:      searchLimit,
		publish:          deps.Publish,
	}
}

// RunFromQuery plans search queries for the hint, gathers candidates from
// the search provider, and runs the pipeline over them.
func (p *Pipeline) RunFromQuery(ctx context.Context, hint string) (*domain.StoredArticle, error) {
	if p.search == nil {
		return nil, domain.NewGenerationError(domain.ErrSearchFailed,
			"no search provider configured", nil, "configure a search provider")
	}

	queries := p.planner.PlanQueries(ctx, hint)

	var candidates []domain.SearchResult
	seen := map[string]struct{}{}
	for _, query := range queries {
		results, err := p.search.Search(ctx, query, p.searchLimit)
		if err != nil {
			genErr := domain.AsGenerationError(err)
			if genErr.Code == domain.ErrContentGenerationFailed {
				genErr = domain.NewGenerationError(domain.ErrSearchFailed,
					fmt.Sprintf("search for %q failed", query), err,
					"check the search provider API key", "try a different search query")
			}
			p.fail(genErr)
			return nil, genErr
		}
		for _, r := range results {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			candidates = append(candidates, r)
		}
	}

	candidates = p.planner.FilterRelevant(ctx, candidates)
	return p.Run(ctx, candidates)
}

// Run executes the full pipeline over raw candidates: load fingerprints,
// validate and select a topic, generate content with bounded retries, then
// persist. Exactly one terminal outcome is produced per invocation, and
// failures come back as *domain.GenerationError values rather than panics.
func (p *Pipeline) Run(ctx context.Context, candidates []domain.SearchResult) (*domain.StoredArticle, error) {
	p.emit("loading", "loading recent article fingerprints", pctLoading)

	fingerprints, err := p.store.RecentFingerprints(ctx, p.fingerprintLimit)
	if err != nil {
		genErr := domain.NewGenerationError(domain.ErrSaveFailed,
			"could not load existing articles for deduplication", err,
			"check the database connection")
		p.fail(genErr)
		return nil, genErr
	}

	p.emit("validating", fmt.Sprintf("validating %d candidate topics", len(candidates)), pctValidating)

	if p.enricher != nil {
		for i, candidate := range candidates {
			candidates[i] = p.enricher.Enrich(ctx, candidate)
		}
	}
	valid := selection.FilterValid(candidates)

	p.emit("selecting", fmt.Sprintf("ranking %d valid topics against %d existing articles", len(valid), len(fingerprints)), pctSelecting)

	result := p.selector.SelectBest(valid, fingerprints)
	if result.Topic == nil {
		genErr := p.noTopicsError(len(candidates), result)
		p.fail(genErr)
		return nil, genErr
	}
	topic := *result.Topic
	for _, skip := range result.Skipped {
		p.logger.Debug("skipped duplicate topic",
			"topic", skip.Topic.Title, "similar_to", skip.SimilarTo, "similarity", skip.Similarity)
	}

	p.emit("generating", fmt.Sprintf("generating article for %q", topic.Title), pctGenerating)

	onRetry := func(attempt int, wait time.Duration, _ error) {
		p.emit("retrying", fmt.Sprintf("generation attempt %d failed, retrying in %s", attempt, wait), pctGenerating)
	}
	article, err := p.generator.Generate(ctx, topic, fingerprintTitles(fingerprints), onRetry)
	if err != nil {
		genErr := domain.AsGenerationError(err)
		p.fail(genErr)
		return nil, genErr
	}

	p.emit("saving", fmt.Sprintf("saving article %q", article.Title), pctSaving)

	var thumbnailURL string
	if p.thumbnails != nil {
		thumbnailURL = p.thumbnails.ThumbnailFor(article.Category)
	}

	// At most one write attempt: a save failure is terminal, never retried.
	stored, err := p.store.CreateArticle(ctx, domain.NewArticle{
		GeneratedArticleData: *article,
		ThumbnailURL:         thumbnailURL,
		IsPublished:          p.publish,
	})
	if err != nil {
		genErr := domain.NewGenerationError(domain.ErrSaveFailed,
			fmt.Sprintf("could not save article %q", article.Title), err,
			"check the database connection")
		p.fail(genErr)
		return nil, genErr
	}

	p.emit("finalizing", "announcing publication", pctFinalizing)
	if p.notifier != nil {
		if err := p.notifier.AnnouncePublish(ctx, *stored); err != nil {
			p.logger.Warn("publish announcement failed", "slug", stored.Slug, "error", err)
		}
	}

	p.emit("complete", fmt.Sprintf("article %s created", stored.Slug), pctComplete)
	return stored, nil
}

func (p *Pipeline) noTopicsError(rawCount int, result selection.Result) *domain.GenerationError {
	if result.Considered == 0 {
		message := "no search results to choose from"
		if rawCount > 0 {
			message = fmt.Sprintf("none of the %d search results had enough content to work with", rawCount)
		}
		return domain.NewGenerationError(domain.ErrNoTopicsFound, message, nil,
			"try a different search query", "broaden the topic hint")
	}
	return domain.NewGenerationError(domain.ErrNoTopicsFound,
		fmt.Sprintf("all %d candidate topics duplicate existing articles", result.Considered), nil,
		"try a more specific search query", "cover a different subject area")
}

func (p *Pipeline) emit(status, message string, pct int) {
	p.progress.Emit(progress.Update{Status: status, Message: message, Progress: pct})
}

func (p *Pipeline) fail(genErr *domain.GenerationError) {
	p.progress.Emit(progress.Update{
		Status:   "failed",
		Message:  genErr.Message,
		Progress: pctComplete,
		Err:      genErr,
	})
}

func fingerprintTitles(fingerprints []domain.Fingerprint) []string {
	titles := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if fp.Title != "" {
			titles = append(titles, fp.Title)
		}
	}
	return titles
}

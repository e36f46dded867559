package ports

import (
	"context"
	"time"

	"ArticleForge/internal/domain"
)

// ChatMessage is a single prompt message for the generation service.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions tunes a single generation call.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// ChatService is the text-in/text-out generation collaborator. Transport and
// provider failures come back as errors and count as attempt failures.
type ChatService interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)
}

// SearchProvider pulls candidate topics from an upstream search API.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// ContentEnricher upgrades thin candidate snippets with full page text.
type ContentEnricher interface {
	Enrich(ctx context.Context, result domain.SearchResult) domain.SearchResult
}

// ArticleStore persists generated articles and serves bounded fingerprint
// lists for deduplication.
type ArticleStore interface {
	RecentFingerprints(ctx context.Context, limit int) ([]domain.Fingerprint, error)
	CreateArticle(ctx context.Context, article domain.NewArticle) (*domain.StoredArticle, error)
}

// ThumbnailProvider resolves a category to a thumbnail URL. Empty string
// means no thumbnail; there is no failure path.
type ThumbnailProvider interface {
	ThumbnailFor(category string) string
}

// Notifier announces published articles to external channels.
type Notifier interface {
	AnnouncePublish(ctx context.Context, article domain.StoredArticle) error
}

// Scheduler controls when recurring generation runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

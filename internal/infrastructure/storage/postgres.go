// Package storage persists generated articles and serves the bounded
// fingerprint lists the deduplication engine compares against.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
	"ArticleForge/internal/similarity"
)

// readingSpeedWPM is the words-per-minute rate behind reading time estimates.
const readingSpeedWPM = 200

// PostgresStore implements ports.ArticleStore on Postgres.
type PostgresStore struct {
	db        *sql.DB
	builder   sq.StatementBuilderType
	stopWords map[string]struct{}
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB. stopWords feed keyword fingerprinting of
// stored titles, matching what the dedup engine uses for candidates.
func NewPostgresStore(db *sql.DB, stopWords map[string]struct{}) *PostgresStore {
	return &PostgresStore{
		db:        db,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		stopWords: stopWords,
	}
}

// RecentFingerprints loads the most recent articles as dedup fingerprints.
// The limit bounds the comparison set; callers never get an unbounded list.
func (s *PostgresStore) RecentFingerprints(ctx context.Context, limit int) ([]domain.Fingerprint, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.builder.
		Select("title", "keywords", "sources").
		From("articles").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fingerprint query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", err)
	}
	defer rows.Close()

	var fingerprints []domain.Fingerprint
	for rows.Next() {
		var fp domain.Fingerprint
		var keywords, urls pq.StringArray
		if err := rows.Scan(&fp.Title, &keywords, &urls); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		fp.Keywords = keywords
		fp.URLs = urls
		if len(fp.Keywords) == 0 {
			fp.Keywords = similarity.ExtractKeywords(fp.Title, s.stopWords)
		}
		fingerprints = append(fingerprints, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fingerprints: %w", err)
	}

	return fingerprints, nil
}

// CreateArticle inserts the generated article and returns its stored form.
// One insert, no retries; duplicate-write protection lives in the caller's
// at-most-once policy.
func (s *PostgresStore) CreateArticle(ctx context.Context, article domain.NewArticle) (*domain.StoredArticle, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not configured")
	}

	id := uuid.NewString()
	slug := Slugify(article.Title)
	readingTime := estimateReadingTime(article.Content)
	keywords := similarity.ExtractKeywords(article.Title+" "+article.Summary, s.stopWords)
	now := time.Now().UTC()

	query, args, err := s.builder.
		Insert("articles").
		Columns("id", "slug", "title", "summary", "content", "category", "tags",
			"sources", "keywords", "meta_title", "meta_description",
			"thumbnail_url", "reading_time", "is_published", "created_at").
		Values(id, slug, article.Title, article.Summary, article.Content, article.Category,
			pq.StringArray(article.Tags), pq.StringArray(article.Sources), pq.StringArray(keywords),
			article.MetaTitle, article.MetaDescription,
			article.ThumbnailURL, readingTime, article.IsPublished, now).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	return &domain.StoredArticle{
		ID:           id,
		Slug:         slug,
		Title:        article.Title,
		Summary:      article.Summary,
		Category:     article.Category,
		ThumbnailURL: article.ThumbnailURL,
		ReadingTime:  readingTime,
		CreatedAt:    now,
	}, nil
}

var slugStripExpr = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL slug.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripExpr.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.Trim(slug[:80], "-")
	}
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	return slug
}

func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readingSpeedWPM - 1) / readingSpeedWPM
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Package scrape upgrades thin search snippets with full page text so the
// validity filter doesn't discard topics whose provider snippet was short.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

const (
	// minUsefulText is the snippet length below which a fetch is worthwhile.
	minUsefulText = 300
	// maxExtracted caps how much page text we keep per candidate.
	maxExtracted = 8000
)

// Extractor fetches a candidate's URL and extracts paragraph text.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ContentEnricher = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets a 20s-timeout default.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{client: client, logger: logger}
}

// Enrich replaces the candidate's text with extracted page content when the
// snippet is thin and the page yields more. Failures leave the candidate
// unchanged; enrichment is strictly best-effort.
func (e *Extractor) Enrich(ctx context.Context, result domain.SearchResult) domain.SearchResult {
	if len(result.Text) >= minUsefulText || result.URL == "" {
		return result
	}

	text, err := e.fetchText(ctx, result.URL)
	if err != nil {
		e.logger.Debug("content enrichment failed", "url", result.URL, "error", err)
		return result
	}
	if len(text) > len(result.Text) {
		result.Text = text
	}
	return result
}

func (e *Extractor) fetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ArticleForge/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	return extractParagraphs(doc), nil
}

func extractParagraphs(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, aside").Remove()

	var parts []string
	total := 0
	doc.Find("article p, main p, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) < 40 {
			return true
		}
		parts = append(parts, text)
		total += len(text)
		return total < maxExtracted
	})

	return strings.Join(parts, "\n\n")
}

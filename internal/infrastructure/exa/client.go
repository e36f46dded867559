// Package exa talks to the Exa neural search API for candidate topics.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

// Client implements ports.SearchProvider against the Exa search endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.SearchProvider = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the provider inside the registry.
func (c *Client) Name() string {
	return "exa"
}

type searchRequest struct {
	Query      string         `json:"query"`
	NumResults int            `json:"numResults"`
	Contents   searchContents `json:"contents"`
}

type searchContents struct {
	Text bool `json:"text"`
}

type searchResponse struct {
	Results []struct {
		Title         string   `json:"title"`
		URL           string   `json:"url"`
		Text          string   `json:"text"`
		PublishedDate string   `json:"publishedDate"`
		Score         *float64 `json:"score"`
	} `json:"results"`
}

// Search posts the query and maps provider results onto domain candidates.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	body, err := json.Marshal(searchRequest{
		Query:      query,
		NumResults: limit,
		Contents:   searchContents{Text: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewGenerationError(domain.ErrSearchFailed,
			fmt.Sprintf("search request for %q failed", query), err,
			"check network connectivity to the search provider")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.NewGenerationError(domain.ErrRateLimitExceeded,
			"search provider rate limit exceeded", nil, "wait before searching again")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.NewGenerationError(domain.ErrUnauthorized,
			"search provider rejected the API key", nil, "check the search API key")
	case resp.StatusCode != http.StatusOK:
		return nil, domain.NewGenerationError(domain.ErrSearchFailed,
			fmt.Sprintf("search provider returned %s", resp.Status), nil,
			"try a different search query")
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, domain.NewGenerationError(domain.ErrSearchFailed,
			"could not decode search response", err)
	}

	results := make([]domain.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, domain.SearchResult{
			Title:         r.Title,
			URL:           r.URL,
			Text:          r.Text,
			PublishedDate: r.PublishedDate,
			Score:         r.Score,
		})
	}
	return results, nil
}

// Package webhook announces published articles to an external endpoint.
package webhook

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

// Notifier posts a JSON payload to the configured webhook URL.
type Notifier struct {
	url    string
	client *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the target URL.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type publishPayload struct {
	Event       string `json:"event"`
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Category    string `json:"category"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	ReadingTime int    `json:"readingTime"`
	CreatedAt   string `json:"createdAt"`
}

// AnnouncePublish posts the article metadata. Failures are reported to the
// caller, which treats announcements as best-effort.
func (n *Notifier) AnnouncePublish(ctx context.Context, article domain.StoredArticle) error {
	if n.url == "" || n.client == nil {
		return fmt.Errorf("webhook notifier misconfigured")
	}

	body, err := json.Marshal(publishPayload{
		Event:       "article.published",
		ID:          article.ID,
		Slug:        article.Slug,
		Title:       article.Title,
		Summary:     article.Summary,
		Category:    article.Category,
		Thumbnail:   article.ThumbnailURL,
		ReadingTime: article.ReadingTime,
		CreatedAt:   article.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook error: %s", resp.Status)
	}

	return nil
}

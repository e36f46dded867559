package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ArticleForge/internal/config"
	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

// Client implements ports.ChatService backed by OpenAI-compatible APIs.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ChatService = (*Client)(nil)

// NewClient builds a chat client from configuration.
func NewClient(cfg config.ChatConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat posts the prompt messages and returns the first choice's content.
// Rate-limit and auth failures come back as typed GenerationErrors so the
// orchestrator can tell them apart from transient transport errors.
func (c *Client) Chat(ctx context.Context, messages []ports.ChatMessage, opts ports.ChatOptions) (string, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", domain.NewGenerationError(domain.ErrUnauthorized,
			"generation service misconfigured", nil, "set the chat API key, endpoint, and model")
	}

	payload := chatRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.NewGenerationError(domain.ErrRateLimitExceeded,
			"generation service rate limit exceeded", nil, "wait before generating another article")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.NewGenerationError(domain.ErrUnauthorized,
			"generation service rejected the API key", nil, "check the chat API key")
	case resp.StatusCode >= http.StatusBadRequest:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chat error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

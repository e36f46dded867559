// Package planner layers AI-assisted query generation and relevance
// filtering in front of topic selection. Both steps degrade gracefully:
// planner failures never abort a pipeline run.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

const querySystemPrompt = `You plan web searches for an e-commerce content site.
Given a topic hint, respond with a JSON array of search query strings, nothing else.`

const filterSystemPrompt = `You review search results for an e-commerce content site.
Given a JSON array of results with "index" and "title" fields, respond with a JSON array
containing the indexes worth writing an article about, nothing else.`

// Planner drives the chat service for search planning. Nil-safe: a nil
// planner plans the hint itself and filters nothing.
type Planner struct {
	chat       ports.ChatService
	queryCount int
	logger     *slog.Logger
}

// New builds a planner producing at most queryCount queries per hint.
func New(chat ports.ChatService, queryCount int, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	if queryCount <= 0 {
		queryCount = 3
	}
	return &Planner{chat: chat, queryCount: queryCount, logger: logger}
}

// PlanQueries asks the chat service for search queries covering the hint.
// On any failure the hint itself is returned as the single query.
func (p *Planner) PlanQueries(ctx context.Context, hint string) []string {
	fallback := []string{hint}
	if p == nil || p.chat == nil {
		return fallback
	}

	messages := []ports.ChatMessage{
		{Role: "system", Content: querySystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Topic hint: %s\nGenerate up to %d queries.", hint, p.queryCount)},
	}
	raw, err := p.chat.Chat(ctx, messages, ports.ChatOptions{Temperature: 0.5, MaxTokens: 512})
	if err != nil {
		p.logger.Warn("query planning failed, using hint directly", "hint", hint, "error", err)
		return fallback
	}

	queries, err := parseStringArray(raw)
	if err != nil || len(queries) == 0 {
		p.logger.Warn("query planning returned no usable queries", "hint", hint, "error", err)
		return fallback
	}
	if len(queries) > p.queryCount {
		queries = queries[:p.queryCount]
	}
	return queries
}

// FilterRelevant asks the chat service which candidates deserve an article.
// On any failure the input is returned unchanged.
func (p *Planner) FilterRelevant(ctx context.Context, candidates []domain.SearchResult) []domain.SearchResult {
	if p == nil || p.chat == nil || len(candidates) == 0 {
		return candidates
	}

	type item struct {
		Index int    `json:"index"`
		Title string `json:"title"`
	}
	items := make([]item, len(candidates))
	for i, c := range candidates {
		items[i] = item{Index: i, Title: c.Title}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return candidates
	}

	messages := []ports.ChatMessage{
		{Role: "system", Content: filterSystemPrompt},
		{Role: "user", Content: string(payload)},
	}
	raw, err := p.chat.Chat(ctx, messages, ports.ChatOptions{Temperature: 0, MaxTokens: 256})
	if err != nil {
		p.logger.Warn("relevance filtering failed, keeping all candidates", "error", err)
		return candidates
	}

	indexes, err := parseIntArray(raw)
	if err != nil || len(indexes) == 0 {
		p.logger.Warn("relevance filter returned no usable indexes", "error", err)
		return candidates
	}

	kept := make([]domain.SearchResult, 0, len(indexes))
	for _, idx := range indexes {
		if idx >= 0 && idx < len(candidates) {
			kept = append(kept, candidates[idx])
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// parseStringArray applies the same fallback discipline as article parsing:
// strict JSON first, then the first-[ to last-] slice.
func parseStringArray(raw string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &values); err == nil {
		return compactStrings(values), nil
	}
	sliced := bracketSlice(raw)
	if sliced == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}
	if err := json.Unmarshal([]byte(sliced), &values); err != nil {
		return nil, fmt.Errorf("parse query array: %w", err)
	}
	return compactStrings(values), nil
}

func parseIntArray(raw string) ([]int, error) {
	var values []int
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &values); err == nil {
		return values, nil
	}
	sliced := bracketSlice(raw)
	if sliced == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}
	if err := json.Unmarshal([]byte(sliced), &values); err != nil {
		return nil, fmt.Errorf("parse index array: %w", err)
	}
	return values, nil
}

func bracketSlice(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func compactStrings(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

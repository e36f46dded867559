package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ArticleForge/internal/domain"
)

// ParseKind tags which strategy recovered the article from model output.
type ParseKind int

const (
	// StructuredJSON means one of the JSON strategies produced the article.
	StructuredJSON ParseKind = iota
	// FallbackExtracted means only the regex field extraction succeeded.
	FallbackExtracted
	// Unrecoverable means no strategy produced a usable article.
	Unrecoverable
)

// ParseOutcome is the result of running the strategy chain over raw model
// output. Exactly one of Article/Err is set.
type ParseOutcome struct {
	Kind    ParseKind
	Article *domain.GeneratedArticleData
	Err     error
}

// fallbackMinContent is the least content the regex fallback may accept.
const fallbackMinContent = 500

var (
	fencedBlockExpr  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	stringExpr       = regexp.MustCompile(`"(?:[^"\\]|\\[\s\S])*"`)
	trailingComma    = regexp.MustCompile(`,\s*([}\]])`)
	titleFieldExpr   = regexp.MustCompile(`"title"\s*:\s*("(?:[^"\\]|\\.)*")`)
	contentFieldExpr = regexp.MustCompile(`"content"\s*:\s*("(?:[^"\\]|\\.)*")`)
)

// Parse runs the parsing strategies in priority order: the raw body as
// strict JSON, then a fenced code block, then the first-{ to last-} slice.
// Every candidate is sanitized before the attempt. When all structured
// parses fail, regex extraction of title and content is the last resort.
func Parse(raw string) ParseOutcome {
	var lastErr error

	for _, candidate := range []string{raw, fencedBlock(raw), braceSlice(raw)} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		article, err := parseStrict(sanitizeJSON(candidate))
		if err == nil {
			return ParseOutcome{Kind: StructuredJSON, Article: article}
		}
		lastErr = err
	}

	if article, ok := extractFields(sanitizeJSON(raw)); ok {
		return ParseOutcome{Kind: FallbackExtracted, Article: article}
	}

	if lastErr == nil {
		lastErr = errors.New("empty response")
	}
	return ParseOutcome{
		Kind: Unrecoverable,
		Err:  fmt.Errorf("no parse strategy recovered an article: %w", lastErr),
	}
}

func parseStrict(payload string) (*domain.GeneratedArticleData, error) {
	var article domain.GeneratedArticleData
	if err := json.Unmarshal([]byte(payload), &article); err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Title) == "" {
		return nil, errors.New("parsed JSON has no title")
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, errors.New("parsed JSON has no content")
	}
	return &article, nil
}

// sanitizeJSON repairs the defects LLM output shows in practice: raw control
// characters, unescaped newlines inside string values, and trailing commas.
func sanitizeJSON(payload string) string {
	payload = strings.TrimSpace(payload)

	payload = stringExpr.ReplaceAllStringFunc(payload, func(match string) string {
		inner := match[1 : len(match)-1]
		inner = strings.ReplaceAll(inner, "\r", "")
		inner = strings.ReplaceAll(inner, "\n", `\n`)
		inner = strings.ReplaceAll(inner, "\t", `\t`)
		return `"` + inner + `"`
	})

	var b strings.Builder
	b.Grow(len(payload))
	for _, r := range payload {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	payload = b.String()

	return trailingComma.ReplaceAllString(payload, "$1")
}

func fencedBlock(raw string) string {
	match := fencedBlockExpr.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return match[1]
}

func braceSlice(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// extractFields pulls title and content straight out of the raw text when
// no structured parse succeeds. Both fields are required, and content must
// carry enough substance to be worth keeping.
func extractFields(raw string) (*domain.GeneratedArticleData, bool) {
	title, okTitle := extractQuoted(titleFieldExpr, raw)
	content, okContent := extractQuoted(contentFieldExpr, raw)
	if !okTitle || !okContent {
		return nil, false
	}
	if strings.TrimSpace(title) == "" || len(content) < fallbackMinContent {
		return nil, false
	}
	return &domain.GeneratedArticleData{Title: title, Content: content}, true
}

func extractQuoted(expr *regexp.Regexp, raw string) (string, bool) {
	match := expr.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	var value string
	if err := json.Unmarshal([]byte(match[1]), &value); err != nil {
		return "", false
	}
	return value, true
}

package generation

import (
	"regexp"
	"strings"

	"ArticleForge/internal/domain"
)

const (
	// MaxTags is the tag cap on a generated article.
	MaxTags = 5
	// MetaTitleMax and MetaDescriptionMax are hard truncation limits.
	MetaTitleMax       = 70
	MetaDescriptionMax = 160
)

var (
	wordCountNoteExpr = regexp.MustCompile(`\(\s*\d+(?:\s*[-–]\s*\d+)?\s*words?\s*\)`)
	sectionLabelExpr  = regexp.MustCompile(`(?m)^\s*\[[^\[\]\n]+\]\s*$`)
	blankRunExpr      = regexp.MustCompile(`\n{3,}`)
	whitespaceExpr    = regexp.MustCompile(`\s+`)
)

// Clean normalizes a freshly parsed article in place and fills gaps the
// model left, using the topic as the source of defaults.
func Clean(article *domain.GeneratedArticleData, topic domain.ScoredTopic) {
	article.Title = CleanTitle(article.Title)
	article.Summary = collapseWhitespace(article.Summary)
	article.Content = CleanContent(article.Content)
	article.Tags = NormalizeTags(article.Tags)

	if article.Category == "" {
		article.Category = topic.SuggestedCategory
	}
	if len(article.Sources) == 0 && topic.URL != "" {
		article.Sources = []string{topic.URL}
	}
	if article.MetaTitle == "" {
		article.MetaTitle = article.Title
	}
	if article.MetaDescription == "" {
		article.MetaDescription = article.Summary
	}
	article.MetaTitle = Truncate(article.MetaTitle, MetaTitleMax)
	article.MetaDescription = Truncate(article.MetaDescription, MetaDescriptionMax)
}

// CleanTitle strips wrapping quotes and collapses internal whitespace.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Trim(title, `"'“”‘’`)
	return collapseWhitespace(title)
}

// CleanContent removes authoring artifacts the model leaves in the body:
// word-count annotations, bracketed section labels on their own line, and
// runs of three or more blank lines.
func CleanContent(content string) string {
	content = wordCountNoteExpr.ReplaceAllString(content, "")
	content = sectionLabelExpr.ReplaceAllString(content, "")
	content = blankRunExpr.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// NormalizeTags lowercases and trims tags, drops empties and duplicates,
// and truncates to MaxTags.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, MaxTags)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
		if len(normalized) == MaxTags {
			break
		}
	}
	return normalized
}

// Truncate hard-caps a string at max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(s, " "))
}

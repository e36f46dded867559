package generation

import (
	"strings"
	"testing"

	"ArticleForge/internal/domain"
)

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`"Quoted   Title"`:        "Quoted Title",
		"“Smart  Quotes”":         "Smart Quotes",
		"  plain title  ":         "plain title",
		"'single quoted'":         "single quoted",
		"multi\n line\ttitle":     "multi line title",
	}
	for in, want := range cases {
		if got := CleanTitle(in); got != want {
			t.Fatalf("CleanTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanContentRemovesArtifacts(t *testing.T) {
	t.Parallel()

	content := "## Intro (150-200 words)\n\n[Introduction]\nSome real text.\n\n\n\n\nMore text. (300 words)\n"
	got := CleanContent(content)

	if strings.Contains(got, "words)") {
		t.Fatalf("word-count annotation survived: %q", got)
	}
	if strings.Contains(got, "[Introduction]") {
		t.Fatalf("section label survived: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank-line run survived: %q", got)
	}
	if !strings.Contains(got, "Some real text.") || !strings.Contains(got, "More text.") {
		t.Fatalf("real content lost: %q", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tags := []string{" SEO ", "seo", "Marketing", "", "Email", "Ads", "Retention", "Extra"}
	got := NormalizeTags(tags)

	if len(got) != MaxTags {
		t.Fatalf("expected %d tags, got %d: %v", MaxTags, len(got), got)
	}
	want := []string{"seo", "marketing", "email", "ads", "retention"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tag %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ü", 200)
	got := Truncate(long, MetaDescriptionMax)
	if count := len([]rune(got)); count > MetaDescriptionMax {
		t.Fatalf("expected at most %d runes, got %d", MetaDescriptionMax, count)
	}

	short := "keep as is"
	if Truncate(short, 70) != short {
		t.Fatal("short strings must pass through untouched")
	}
}

func TestCleanFillsDefaultsAndTruncatesMeta(t *testing.T) {
	t.Parallel()

	topic := domain.ScoredTopic{
		SearchResult:      domain.SearchResult{URL: "https://example.com/src"},
		SuggestedCategory: "Logistics",
	}
	article := &domain.GeneratedArticleData{
		Title:     `"Overly Long Meta"`,
		Summary:   strings.Repeat("long summary sentence ", 20),
		Content:   "body",
		MetaTitle: strings.Repeat("t", 100),
	}

	Clean(article, topic)

	if article.Category != "Logistics" {
		t.Fatalf("category default not applied: %s", article.Category)
	}
	if len(article.Sources) != 1 || article.Sources[0] != "https://example.com/src" {
		t.Fatalf("sources default not applied: %v", article.Sources)
	}
	if n := len([]rune(article.MetaTitle)); n > MetaTitleMax {
		t.Fatalf("meta title exceeds %d runes: %d", MetaTitleMax, n)
	}
	if n := len([]rune(article.MetaDescription)); n > MetaDescriptionMax {
		t.Fatalf("meta description exceeds %d runes: %d", MetaDescriptionMax, n)
	}
	if article.MetaDescription == "" {
		t.Fatal("meta description must default to the summary")
	}
}

package selection

import (
	"strings"
	"testing"
	"time"

	"ArticleForge/internal/classify"
	"ArticleForge/internal/dedup"
	"ArticleForge/internal/domain"
	"ArticleForge/internal/scoring"
	"ArticleForge/internal/similarity"
)

var testStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "guide": {}, "tips": {}, "best": {},
}

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testSelector() Selector {
	return Selector{
		Dedup:   dedup.New(dedup.DefaultThreshold, similarity.DefaultWeights, testStopWords),
		Weights: scoring.DefaultWeights,
		Dictionary: classify.Dictionary{
			Default: "E-commerce",
			Categories: []classify.Category{
				{Name: "Marketing", Keywords: []string{"marketing", "seo", "campaign"}},
				{Name: "Logistics", Keywords: []string{"shipping", "warehouse", "delivery"}},
			},
		},
		Now: func() time.Time { return testNow },
	}
}

func longText(seed string) string {
	return strings.Repeat(seed+" ", 120/len(seed)+1)[:120]
}

func TestFilterValid(t *testing.T) {
	t.Parallel()

	candidates := []domain.SearchResult{
		{Title: "ok", URL: "https://a.com", Text: longText("marketing")},
		{Title: "", URL: "https://a.com", Text: longText("marketing")},
		{Title: "no url", Text: longText("marketing")},
		{Title: "thin", URL: "https://a.com", Text: "too short"},
	}

	valid := FilterValid(candidates)
	if len(valid) != 1 || valid[0].Title != "ok" {
		t.Fatalf("expected only the complete candidate to survive, got %v", valid)
	}
}

func TestSelectBestEmptyInput(t *testing.T) {
	t.Parallel()

	result := testSelector().SelectBest(nil, nil)
	if result.Topic != nil {
		t.Fatal("expected nil topic for empty candidate list")
	}
	if result.Considered != 0 {
		t.Fatalf("expected 0 considered, got %d", result.Considered)
	}
}

func TestSelectBestSingleCandidate(t *testing.T) {
	t.Parallel()

	score := 0.8
	candidate := domain.SearchResult{
		Title:         "Holiday Marketing Campaign Ideas",
		URL:           "https://a.com/1",
		Text:          longText("seasonal marketing campaign"),
		PublishedDate: testNow.AddDate(0, 0, -3).Format(time.RFC3339),
		Score:         &score,
	}

	result := testSelector().SelectBest([]domain.SearchResult{candidate}, nil)
	if result.Topic == nil {
		t.Fatal("expected a topic")
	}
	if result.Topic.RelevanceScore != 0.8 {
		t.Fatalf("relevance: expected 0.8, got %f", result.Topic.RelevanceScore)
	}
	if result.Topic.RecencyScore != 0.9 {
		t.Fatalf("recency: expected 0.9, got %f", result.Topic.RecencyScore)
	}
	want := 0.8*0.6 + 0.9*0.4
	if diff := result.Topic.CombinedScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("combined: expected %f, got %f", want, result.Topic.CombinedScore)
	}
	if result.Topic.SuggestedCategory != "Marketing" {
		t.Fatalf("category: expected Marketing, got %s", result.Topic.SuggestedCategory)
	}
}

func TestSelectBestFavorsRecent(t *testing.T) {
	t.Parallel()

	recentScore, staleScore := 0.7, 0.9
	candidates := []domain.SearchResult{
		{
			Title:         "Stale but relevant",
			URL:           "https://a.com/stale",
			Text:          longText("warehouse shipping"),
			PublishedDate: testNow.AddDate(0, 0, -200).Format(time.RFC3339),
			Score:         &staleScore,
		},
		{
			Title:         "Fresh topic",
			URL:           "https://a.com/fresh",
			Text:          longText("warehouse delivery"),
			PublishedDate: testNow.Format(time.RFC3339),
			Score:         &recentScore,
		},
	}

	result := testSelector().SelectBest(candidates, nil)
	if result.Topic == nil || result.Topic.Title != "Fresh topic" {
		t.Fatalf("expected fresh topic to win, got %+v", result.Topic)
	}
}

func TestSelectBestStableOnTies(t *testing.T) {
	t.Parallel()

	// Identical scores and dates: the first input candidate must win.
	score := 0.5
	date := testNow.Format(time.RFC3339)
	candidates := []domain.SearchResult{
		{Title: "First In", URL: "https://a.com/1", Text: longText("marketing"), PublishedDate: date, Score: &score},
		{Title: "Second In", URL: "https://a.com/2", Text: longText("marketing"), PublishedDate: date, Score: &score},
	}

	result := testSelector().SelectBest(candidates, nil)
	if result.Topic == nil || result.Topic.Title != "First In" {
		t.Fatalf("tie must keep input order, got %+v", result.Topic)
	}
}

func TestSelectBestAllDuplicates(t *testing.T) {
	t.Parallel()

	existing := []domain.Fingerprint{{
		Title:    "Existing Article",
		Keywords: []string{"existing", "article"},
		URLs:     []string{"https://a.com/dup"},
	}}
	candidates := []domain.SearchResult{
		{Title: "Anything", URL: "https://a.com/dup", Text: longText("marketing")},
	}

	result := testSelector().SelectBest(candidates, existing)
	if result.Topic != nil {
		t.Fatal("expected nil topic when every candidate is a duplicate")
	}
	if result.Considered != 1 || len(result.Skipped) != 1 {
		t.Fatalf("expected considered=1 skipped=1, got %+v", result)
	}
}

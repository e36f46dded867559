// Package selection ranks validated candidate topics and picks the one the
// pipeline should generate next.
package selection

import (
	"sort"
	"strings"
	"time"

	"ArticleForge/internal/classify"
	"ArticleForge/internal/dedup"
	"ArticleForge/internal/domain"
	"ArticleForge/internal/scoring"
)

// MinTextLength is the shortest candidate text worth generating from.
// Anything at or below this is dropped before scoring.
const MinTextLength = 100

// Selector wires the scoring engine, classifier, and dedup engine together.
type Selector struct {
	Dedup      dedup.Engine
	Weights    scoring.Weights
	Dictionary classify.Dictionary
	Now        func() time.Time
}

// Result carries the pick plus enough context for the coordinator to tell
// "no candidates at all" apart from "everything was a duplicate".
type Result struct {
	Topic      *domain.ScoredTopic
	Considered int
	Skipped    []domain.SkippedTopic
}

// Valid reports whether a raw candidate has enough substance to score.
func Valid(candidate domain.SearchResult) bool {
	if strings.TrimSpace(candidate.Title) == "" {
		return false
	}
	if strings.TrimSpace(candidate.URL) == "" {
		return false
	}
	return len(candidate.Text) > MinTextLength
}

// FilterValid drops candidates missing title/url/text or with insufficient
// content, preserving order.
func FilterValid(candidates []domain.SearchResult) []domain.SearchResult {
	valid := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if Valid(c) {
			valid = append(valid, c)
		}
	}
	return valid
}

// SelectBest scores every surviving candidate and returns the highest-ranked
// topic. A nil existing list skips deduplication. Result.Topic is nil when
// no candidate survives; Considered and Skipped disambiguate why.
func (s Selector) SelectBest(candidates []domain.SearchResult, existing []domain.Fingerprint) Result {
	result := Result{Considered: len(candidates)}
	if len(candidates) == 0 {
		return result
	}

	survivors := candidates
	if existing != nil {
		survivors, result.Skipped = s.Dedup.Filter(candidates, existing)
		if len(survivors) == 0 {
			return result
		}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	scored := make([]domain.ScoredTopic, 0, len(survivors))
	for _, candidate := range survivors {
		relevance := scoring.RelevanceScore(candidate.Score)
		recency := scoring.RecencyScore(candidate.PublishedDate, now)
		scored = append(scored, domain.ScoredTopic{
			SearchResult:      candidate,
			RelevanceScore:    relevance,
			RecencyScore:      recency,
			CombinedScore:     scoring.Combined(relevance, recency, s.Weights),
			SuggestedCategory: classify.Classify(candidate.Title, candidate.Text, s.Dictionary),
		})
	}

	// Stable: ties keep input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})

	result.Topic = &scored[0]
	return result
}

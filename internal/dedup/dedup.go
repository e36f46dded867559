// Package dedup decides whether candidate topics duplicate articles the
// platform already published.
package dedup

import (
	"ArticleForge/internal/domain"
	"ArticleForge/internal/similarity"
)

// DefaultThreshold is the combined-similarity level at or above which a
// candidate counts as a duplicate.
const DefaultThreshold = 0.35

// DefaultCheckLimit bounds how many recent fingerprints callers should load
// for comparison.
const DefaultCheckLimit = 500

// Engine compares candidates against a bounded fingerprint list. The zero
// value is not usable; construct via New.
type Engine struct {
	threshold float64
	weights   similarity.Weights
	stopWords map[string]struct{}
}

// New builds a dedup engine with the given threshold and similarity weights.
func New(threshold float64, weights similarity.Weights, stopWords map[string]struct{}) Engine {
	return Engine{threshold: threshold, weights: weights, stopWords: stopWords}
}

// Check compares one candidate against every existing fingerprint. An exact
// URL match short-circuits with similarity 1.0; otherwise the maximum
// combined similarity across all fingerprints decides.
func (e Engine) Check(candidate domain.SearchResult, existing []domain.Fingerprint) domain.DuplicationCheck {
	for _, article := range existing {
		for _, u := range article.URLs {
			if u != "" && u == candidate.URL {
				return domain.DuplicationCheck{
					IsDuplicate: true,
					SimilarTo:   article.Title,
					Similarity:  1.0,
				}
			}
		}
	}

	keywords := similarity.ExtractKeywords(candidate.Title+" "+candidate.Text, e.stopWords)

	var best domain.DuplicationCheck
	for _, article := range existing {
		score := similarity.Combined(candidate.Title, keywords, article, e.weights)
		if score > best.Similarity {
			best.Similarity = score
			best.SimilarTo = article.Title
		}
	}
	best.IsDuplicate = best.Similarity >= e.threshold
	return best
}

// Filter partitions candidates into survivors and skipped duplicates,
// preserving input order. Skipped entries keep the matched article title and
// similarity for observability.
func (e Engine) Filter(candidates []domain.SearchResult, existing []domain.Fingerprint) (filtered []domain.SearchResult, skipped []domain.SkippedTopic) {
	for _, candidate := range candidates {
		check := e.Check(candidate, existing)
		if check.IsDuplicate {
			skipped = append(skipped, domain.SkippedTopic{
				Topic:      candidate,
				SimilarTo:  check.SimilarTo,
				Similarity: check.Similarity,
			})
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered, skipped
}

package scoring

import "time"

// Weights splits the combined topic score between provider relevance and
// publication recency. The two parts must sum to 1.0.
type Weights struct {
	Relevance float64
	Recency   float64
}

// DefaultWeights favors relevance 60/40 over recency.
var DefaultWeights = Weights{Relevance: 0.6, Recency: 0.4}

// neutralScore is used when a value is missing or unparseable.
const neutralScore = 0.5

// dateLayouts are tried in order when parsing provider publication dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RecencyScore maps the age of a publication date to a step-function score.
// Missing or unparseable dates score neutral rather than failing.
func RecencyScore(publishedDate string, now time.Time) float64 {
	published, ok := parseDate(publishedDate)
	if !ok {
		return neutralScore
	}

	ageDays := now.Sub(published).Hours() / 24
	switch {
	case ageDays <= 0:
		return 1.0
	case ageDays <= 7:
		return 0.9
	case ageDays <= 30:
		return 0.7
	case ageDays <= 60:
		return 0.5
	case ageDays <= 90:
		return 0.3
	default:
		return 0.1
	}
}

// RelevanceScore passes the provider score through, defaulting to neutral
// when the provider sent none, and clamping into [0,1].
func RelevanceScore(providerScore *float64) float64 {
	if providerScore == nil {
		return neutralScore
	}
	return Clamp01(*providerScore)
}

// Combined computes the weighted topic score used for ranking.
func Combined(relevance, recency float64, w Weights) float64 {
	return Clamp01(relevance*w.Relevance + recency*w.Recency)
}

// Clamp01 bounds a value into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

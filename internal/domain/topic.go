package domain

// SearchResult is one candidate topic returned by an external search provider.
type SearchResult struct {
	Title         string
	URL           string
	Text          string
	PublishedDate string
	Score         *float64
}

// Fingerprint summarizes an already-published article for duplicate comparison.
// It is derived once per pipeline run and never mutated afterwards.
type Fingerprint struct {
	Title    string
	Keywords []string
	URLs     []string
}

// ScoredTopic is a SearchResult enriched with ranking data. It lives only
// between topic selection and content generation.
type ScoredTopic struct {
	SearchResult
	RelevanceScore    float64
	RecencyScore      float64
	CombinedScore     float64
	SuggestedCategory string
}

// DuplicationCheck reports how close a candidate is to the existing corpus.
type DuplicationCheck struct {
	IsDuplicate bool
	SimilarTo   string
	Similarity  float64
}

// SkippedTopic records why a candidate was removed during dedup filtering.
type SkippedTopic struct {
	Topic      SearchResult
	SimilarTo  string
	Similarity float64
}

package domain

import "time"

// GeneratedArticleData is the cleaned artifact produced by the generation
// orchestrator. Ownership transfers to the persistence collaborator on save.
type GeneratedArticleData struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Sources         []string `json:"sources"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

// NewArticle is what the pipeline hands to the store: generated content plus
// publication metadata resolved by the coordinator.
type NewArticle struct {
	GeneratedArticleData
	ThumbnailURL string
	IsPublished  bool
}

// StoredArticle is the persistence collaborator's receipt for a saved article.
type StoredArticle struct {
	ID           string
	Slug         string
	Title        string
	Summary      string
	Category     string
	ThumbnailURL string
	ReadingTime  int
	CreatedAt    time.Time
}

// Package thumbnail maps article categories to stock thumbnail URLs.
package thumbnail

import "ArticleForge/internal/ports"

// Provider resolves a thumbnail URL per category from a fixed map.
type Provider struct {
	byCategory map[string]string
	fallback   string
}

var _ ports.ThumbnailProvider = (*Provider)(nil)

// NewProvider builds a provider over the configured category map.
func NewProvider(byCategory map[string]string, fallback string) *Provider {
	return &Provider{byCategory: byCategory, fallback: fallback}
}

// ThumbnailFor returns the category's thumbnail or the fallback when the
// category is unknown or unmapped.
func (p *Provider) ThumbnailFor(category string) string {
	if u, ok := p.byCategory[category]; ok && u != "" {
		return u
	}
	return p.fallback
}

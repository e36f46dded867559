// Package search keeps a registry of named search provider strategies so
// the active provider is a configuration choice, not a compile-time one.
package search

import (
	"fmt"

	"ArticleForge/internal/ports"
)

// Registry maps provider names to their implementations.
type Registry struct {
	providers map[string]ports.SearchProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]ports.SearchProvider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider ports.SearchProvider) {
	if r.providers == nil {
		r.providers = map[string]ports.SearchProvider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.SearchProvider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("search provider %s is not registered", name)
}

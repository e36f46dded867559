// Package classify assigns a content category to a topic by counting
// keyword occurrences from a fixed, config-provided dictionary.
package classify

import "strings"

// Category pairs a name with the keywords that signal it.
type Category struct {
	Name     string
	Keywords []string
}

// Dictionary is the ordered category list plus the fallback used when no
// keyword matches at all. Declaration order breaks ties.
type Dictionary struct {
	Categories []Category
	Default    string
}

// Classify counts case-insensitive substring occurrences of every category
// keyword across title+text and returns the best-scoring category.
// Deterministic: ties resolve to the first-declared category.
func Classify(title, text string, dict Dictionary) string {
	haystack := strings.ToLower(title + " " + text)

	best := dict.Default
	bestCount := 0
	for _, category := range dict.Categories {
		count := 0
		for _, keyword := range category.Keywords {
			count += strings.Count(haystack, strings.ToLower(keyword))
		}
		if count > bestCount {
			best = category.Name
			bestCount = count
		}
	}
	return best
}

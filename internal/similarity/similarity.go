package similarity

import (
	"net/url"
	"strings"
	"unicode"

	"ArticleForge/internal/domain"
)

// MaxKeywords bounds how many tokens ExtractKeywords keeps, in input order.
const MaxKeywords = 20

// Weights splits combined similarity between keyword overlap and title
// bigram overlap. The two parts must sum to 1.0.
type Weights struct {
	Keyword float64
	Bigram  float64
}

// DefaultWeights is the 50/50 split used across the pipeline.
var DefaultWeights = Weights{Keyword: 0.5, Bigram: 0.5}

// ExtractKeywords lowercases the text, strips non-alphanumeric runes, drops
// tokens of length <= 2 or present in stopWords, and keeps the first
// MaxKeywords survivors in insertion order.
func ExtractKeywords(text string, stopWords map[string]struct{}) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	keywords := make([]string, 0, MaxKeywords)
	for _, token := range strings.Fields(b.String()) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// Jaccard computes |A∩B| / |A∪B| over the distinct elements of both slices.
// Either side empty yields 0.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Bigram builds consecutive-word bigram sets for both texts and applies the
// Jaccard formula. Tokens of length 1 are skipped before pairing.
func Bigram(textA, textB string) float64 {
	return Jaccard(bigrams(textA), bigrams(textB))
}

// Combined scores a candidate topic against one existing article fingerprint.
func Combined(topicTitle string, topicKeywords []string, article domain.Fingerprint, w Weights) float64 {
	keywordPart := Jaccard(topicKeywords, article.Keywords)
	bigramPart := Bigram(topicTitle, article.Title)
	return keywordPart*w.Keyword + bigramPart*w.Bigram
}

// ExtractDomain returns the hostname of a URL without a leading "www.".
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}

func bigrams(text string) []string {
	normalized := strings.Fields(strings.ToLower(text))
	words := normalized[:0]
	for _, w := range normalized {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(w) > 1 {
			words = append(words, w)
		}
	}

	if len(words) < 2 {
		return nil
	}
	pairs := make([]string, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		pairs = append(pairs, words[i]+" "+words[i+1])
	}
	return pairs
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

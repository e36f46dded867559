package generation

import (
	"fmt"
	"strings"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

// maxUniquenessTitles bounds how many existing titles the prompt lists.
const maxUniquenessTitles = 10

const systemPrompt = `You are an expert e-commerce content writer. You write practical, well-structured articles for online store owners.
Respond with a single JSON object and nothing else. The object must have these fields:
"title", "summary", "content" (markdown body), "category", "tags" (array, max 5), "sources" (array of URLs), "metaTitle" (max 70 chars), "metaDescription" (max 160 chars).
Do not wrap the JSON in markdown fences. Do not add commentary before or after the JSON.`

// BuildMessages assembles the system+user prompt for one generation attempt.
// The uniqueness block lists existing titles so the model avoids overlap.
func BuildMessages(topic domain.ScoredTopic, existingTitles []string, minWords int) []ports.ChatMessage {
	var user strings.Builder

	fmt.Fprintf(&user, "Write a complete article about the following topic.\n\n")
	fmt.Fprintf(&user, "Topic: %s\n", topic.Title)
	fmt.Fprintf(&user, "Source URL: %s\n", topic.URL)
	fmt.Fprintf(&user, "Suggested category: %s\n", topic.SuggestedCategory)
	fmt.Fprintf(&user, "Minimum length: %d words.\n", minWords)
	fmt.Fprintf(&user, "\nReference material:\n%s\n", topic.Text)

	if len(existingTitles) > 0 {
		titles := existingTitles
		if len(titles) > maxUniquenessTitles {
			titles = titles[:maxUniquenessTitles]
		}
		user.WriteString("\nThe site already covers the following topics. Your article must not duplicate or closely overlap any of them:\n")
		for _, title := range titles {
			fmt.Fprintf(&user, "- %s\n", title)
		}
	}

	return []ports.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user.String()},
	}
}

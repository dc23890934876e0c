package course

import "strings"

// tagVocabulary is the fixed, ordered vocabulary courses are matched
// against. Order matters: matches are reported in vocabulary order.
var tagVocabulary = []string{
	"react",
	"vue",
	"angular",
	"svelte",
	"frontend",
	"backend",
	"api",
	"database",
	"devops",
	"docker",
	"kubernetes",
	"testing",
	"cli",
	"machine-learning",
	"llm",
	"golang",
	"python",
	"javascript",
	"typescript",
	"rust",
	"security",
	"documentation",
}

const maxDerivedTags = 3

// DeriveTags matches the vocabulary against the course title and user
// context, case-insensitively, capped at three tags. Deterministic and
// pure; storage of the tags is someone else's job.
func DeriveTags(title, context string) []string {
	haystack := strings.ToLower(title + " " + context)
	var tags []string
	for _, candidate := range tagVocabulary {
		if strings.Contains(haystack, candidate) {
			tags = append(tags, candidate)
			if len(tags) == maxDerivedTags {
				break
			}
		}
	}
	return tags
}

package expenseimporter

import (
	"regexp"
	"strings"
)

var tagStripRegex = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ExtractTags pulls hashtag tokens out of a free-text description. Each
// token keeps only [A-Za-z0-9_] characters; duplicates are removed with the
// first appearance winning, and tokens that strip down to nothing are
// dropped.
func ExtractTags(description string) []string {
	var tags []string

	seen := map[string]bool{}

	for _, token := range strings.Fields(description) {
		if !strings.HasPrefix(token, "#") {
			continue
		}

		tag := tagStripRegex.ReplaceAllString(token, "")
		if tag == "" || seen[tag] {
			continue
		}

		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

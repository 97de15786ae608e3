package expenseimporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	assert.Equal(t, []string{"rent", "utilities"}, ExtractTags("Paid #rent #utilities!"))
	assert.Equal(t, []string{"a", "b"}, ExtractTags("#a #a #b"))
	assert.Equal(t, []string{"caf_3"}, ExtractTags("lunch at #caf_3!!"))
}

func TestExtractTagsNoTags(t *testing.T) {
	assert.Empty(t, ExtractTags("no tags here"))
	assert.Empty(t, ExtractTags(""))
}

func TestExtractTagsDropsEmptyTokens(t *testing.T) {
	// a bare "#" or "#!!" strips down to nothing and is not a tag
	assert.Empty(t, ExtractTags("see # and #!! markers"))
	assert.Equal(t, []string{"ok"}, ExtractTags("# #ok"))
}

func TestExtractTagsSplitsOnAnyWhitespace(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, ExtractTags("#one\t#two\n"))
}

package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter_Basic(t *testing.T) {
	content := "---\ntitle: Getting Started\ntags:\n  - docs\n---\n\n# Getting Started\n\nBody text.\n"

	meta, body, err := parseFrontMatter(content)
	require.NoError(t, err)

	assert.Equal(t, "Getting Started", meta["title"])
	assert.Equal(t, []any{"docs"}, meta["tags"])
	assert.Equal(t, "\n# Getting Started\n\nBody text.\n", body)
}

func TestParseFrontMatter_NoBlock(t *testing.T) {
	content := "# Plain file\n\nNo front matter here.\n"

	meta, body, err := parseFrontMatter(content)
	require.NoError(t, err)

	assert.Nil(t, meta)
	assert.Equal(t, content, body)
}

func TestParseFrontMatter_DelimiterMidFile(t *testing.T) {
	// A "---" that is not the first line is a horizontal rule, not front matter.
	content := "Intro\n---\ntitle: nope\n"

	meta, body, err := parseFrontMatter(content)
	require.NoError(t, err)

	assert.Nil(t, meta)
	assert.Equal(t, content, body)
}

func TestParseFrontMatter_Unclosed(t *testing.T) {
	_, _, err := parseFrontMatter("---\ntitle: Oops\nno closing delimiter\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not closed")
}

func TestParseFrontMatter_InvalidYAML(t *testing.T) {
	_, _, err := parseFrontMatter("---\ntitle: [unbalanced\n---\nbody\n")
	require.Error(t, err)
}

func TestParseFrontMatter_EmptyBlock(t *testing.T) {
	meta, body, err := parseFrontMatter("---\n\n---\nbody\n")
	require.NoError(t, err)

	assert.Empty(t, meta)
	assert.Equal(t, "body\n", body)
}

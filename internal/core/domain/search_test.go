package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_SamePrefixCollides(t *testing.T) {
	prefix := strings.Repeat("a", 250)
	a := SearchResult{Chunk: Chunk{Filename: "doc.md", Content: prefix + "tail one"}}
	b := SearchResult{Chunk: Chunk{Filename: "doc.md", Content: prefix + "a completely different tail"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_FilenameDistinguishes(t *testing.T) {
	a := SearchResult{Chunk: Chunk{Filename: "a.md", Content: "same text"}}
	b := SearchResult{Chunk: Chunk{Filename: "b.md", Content: "same text"}}

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_UsesSectionWhenSet(t *testing.T) {
	a := SearchResult{Chunk: Chunk{Filename: "a.md", Section: "section text"}}
	b := SearchResult{Chunk: Chunk{Filename: "a.md", Content: "section text"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestDedupeResults_KeepsFirstSeen(t *testing.T) {
	results := []SearchResult{
		{Chunk: Chunk{Filename: "a.md", Content: "alpha"}, Score: 3.0},
		{Chunk: Chunk{Filename: "b.md", Content: "beta"}, Score: 2.0},
		{Chunk: Chunk{Filename: "a.md", Content: "alpha"}, Score: 9.0},
		{Chunk: Chunk{Filename: "c.md", Content: "gamma"}, Score: 1.0},
	}

	deduped := DedupeResults(results)

	assert.Len(t, deduped, 3)
	assert.Equal(t, "a.md", deduped[0].Chunk.Filename)
	assert.Equal(t, 3.0, deduped[0].Score)
	assert.Equal(t, "b.md", deduped[1].Chunk.Filename)
	assert.Equal(t, "c.md", deduped[2].Chunk.Filename)
}

func TestDedupeResults_Empty(t *testing.T) {
	assert.Empty(t, DedupeResults(nil))
}

func TestChunk_Text(t *testing.T) {
	c := Chunk{Content: "window"}
	assert.Equal(t, "window", c.Text())

	c = Chunk{Section: "section", Content: "window"}
	assert.Equal(t, "section", c.Text())
}

func TestChunk_Valid(t *testing.T) {
	assert.True(t, (&Chunk{Filename: "a.md", Content: "x"}).Valid())
	assert.False(t, (&Chunk{Filename: "a.md"}).Valid())
	assert.False(t, (&Chunk{Content: "x"}).Valid())
}

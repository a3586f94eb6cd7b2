package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintPrefixLen is how much of the chunk text participates in
// the dedup fingerprint.
const fingerprintPrefixLen = 250

// SearchResult represents a single search hit.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the relevance score from the underlying index.
	Score float64

	// Rank is the 1-based position within the result list that
	// produced this hit.
	Rank int
}

// Fingerprint derives the dedup identity of a search result from its
// filename and the first 250 bytes of its text.
func (r *SearchResult) Fingerprint() string {
	text := r.Chunk.Text()
	if len(text) > fingerprintPrefixLen {
		text = text[:fingerprintPrefixLen]
	}
	sum := sha256.Sum256([]byte(r.Chunk.Filename + " " + text))
	return hex.EncodeToString(sum[:])
}

// DedupeResults collapses results sharing a fingerprint, keeping the
// first occurrence. Output order equals first-seen order; no rank
// fusion is performed.
func DedupeResults(results []SearchResult) []SearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		fp := r.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, r)
	}
	return out
}

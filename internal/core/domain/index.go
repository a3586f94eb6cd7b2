package domain

import "time"

// IndexStats summarises one index build.
type IndexStats struct {
	// Documents is the number of documents loaded from the repository.
	Documents int

	// Chunks is the number of chunks produced and indexed.
	Chunks int

	// Embedded is the number of chunks with vector embeddings. Zero when
	// the embedding service is unavailable.
	Embedded int

	// Elapsed is the wall-clock duration of the build.
	Elapsed time.Duration
}

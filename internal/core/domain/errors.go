package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunkParams indicates sliding-window parameters that
	// violate size > step > 0. Raised at construction time, never
	// silently clamped.
	ErrInvalidChunkParams = errors.New("invalid chunk parameters: require size > step > 0")

	// ErrBranchNotFound indicates neither the main nor master branch
	// of a repository could be fetched.
	ErrBranchNotFound = errors.New("repository branch not found (checked 'main' and 'master')")

	// ErrEmptyTranscript indicates a log record with no messages,
	// which cannot be judged.
	ErrEmptyTranscript = errors.New("log record has no messages")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Vector/semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable indicates the search engine is not configured.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrSessionNotReady indicates the assistant was asked a question
	// before a repository was selected and indexed.
	ErrSessionNotReady = errors.New("no repository selected for this session")
)

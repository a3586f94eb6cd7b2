// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Loader: fetches a repository's markdown documents
//   - Chunker: splits documents into searchable chunks
//   - SearchEngine: full-text index over chunks. Lexical search is always required.
//   - DocumentStore: document and chunk persistence
//   - LogStore: transcript persistence
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - VectorIndex: vector storage/search. Only enabled when EmbeddingService is configured.
//   - EmbeddingService: generates vector embeddings. Without it, VectorIndex is also disabled.
//   - LLMService: language model operations. Without it, semantic chunking is disabled.
//   - Agent / Judge: assistant and evaluation runtimes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or chunker package
package driven

// Package domain defines the core business entities for Docent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a markdown file pulled from a repository archive
//   - Chunk: a searchable window or section of a document
//   - SearchResult: a scored chunk returned by an index query
//   - LogRecord: a persisted transcript of one assistant interaction
//   - EvaluationChecklist: a judge's verdict on one transcript
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain

package domain

import "time"

// Document represents one markdown file extracted from a repository archive.
// It is the canonical representation after front matter parsing.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the path of the file within the repository,
	// without the leading archive directory segment.
	Filename string

	// Title is the human-readable title, promoted from front matter
	// when present.
	Title string

	// Content is the body text after the front matter block.
	Content string

	// Metadata contains the parsed front matter key-value pairs.
	Metadata map[string]any

	// FetchedAt is when the document was downloaded.
	FetchedAt time.Time
}

// Chunk represents a searchable unit within a document.
// Documents are split into chunks for granular search results.
//
// Exactly one of Content or Section is populated: Content by the
// sliding-window chunker (with Start set to the window's character offset),
// Section by the semantic chunker.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Filename is inherited from the parent document so provenance
	// survives into the index and into search results.
	Filename string

	// Title is inherited from the parent document.
	Title string

	// Content is the window text in sliding-window mode.
	Content string

	// Section is the model-produced section text in semantic mode.
	Section string

	// Start is the character offset of the window within the document.
	// Only meaningful in sliding-window mode.
	Start int

	// Position is the ordinal position within the document.
	Position int

	// Metadata is inherited from the parent document.
	Metadata map[string]any
}

// Text returns the searchable text of the chunk, whichever of
// Section or Content is populated.
func (c *Chunk) Text() string {
	if c.Section != "" {
		return c.Section
	}
	return c.Content
}

// Valid reports whether the chunk may be admitted to the index.
// Chunks missing a filename or any text are dropped before indexing.
func (c *Chunk) Valid() bool {
	return c.Filename != "" && c.Text() != ""
}

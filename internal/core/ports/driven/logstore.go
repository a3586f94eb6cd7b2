package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// LogStore persists interaction transcripts, one file per record.
type LogStore interface {
	// Write stores a record and returns the file name it was written
	// under. The write is all-or-nothing: readers never observe a
	// partial file.
	Write(ctx context.Context, rec *domain.LogRecord) (string, error)

	// List returns the base names of all stored records.
	List(ctx context.Context) ([]string, error)

	// Load reads one record by base name and sets its LogFile field.
	Load(ctx context.Context, name string) (*domain.LogRecord, error)
}

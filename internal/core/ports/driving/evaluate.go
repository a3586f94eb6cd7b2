package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// EvaluationService runs the LLM-judge pipeline over stored transcripts.
type EvaluationService interface {
	// LoadEvalSet loads all parseable AI-generated records from the log
	// store. Malformed files are skipped with a warning.
	LoadEvalSet(ctx context.Context) ([]domain.LogRecord, error)

	// Run judges every record in the evaluation set concurrently and
	// returns one results row per successfully judged record. Records
	// whose judging fails are logged and excluded.
	Run(ctx context.Context, records []domain.LogRecord) ([]domain.ResultsRow, error)

	// WriteCSV writes results rows to a CSV file at path.
	WriteCSV(rows []domain.ResultsRow, path string) error
}

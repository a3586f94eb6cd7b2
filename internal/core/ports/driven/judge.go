package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// Judge scores one transcript against the evaluation rubric.
type Judge interface {
	// Evaluate submits the record's redacted transcript to the judge
	// model and returns its checklist. Judge outputs are not
	// reproducible across runs; callers must treat the verdicts as
	// opaque rather than asserting exact outcomes.
	Evaluate(ctx context.Context, rec *domain.LogRecord) (domain.EvaluationChecklist, error)
}

// JudgeFactory builds an isolated judge instance. The evaluation
// pipeline calls it once per unit of work so one record's failure
// cannot corrupt another's judge state.
type JudgeFactory func() (Judge, error)

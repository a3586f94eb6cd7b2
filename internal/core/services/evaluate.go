package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure EvaluationService implements the interface.
var _ driving.EvaluationService = (*EvaluationService)(nil)

const (
	// DefaultEvalConcurrency is how many records are judged in parallel.
	DefaultEvalConcurrency = 8

	// DefaultJudgeTimeout bounds a single judge call.
	DefaultJudgeTimeout = 2 * time.Minute
)

// EvaluationService runs the LLM-judge pipeline over stored transcripts.
type EvaluationService struct {
	logStore     driven.LogStore
	judgeFactory driven.JudgeFactory
	concurrency  int
	timeout      time.Duration
	limiter      *rate.Limiter
}

// EvaluationOption configures an EvaluationService.
type EvaluationOption func(*EvaluationService)

// WithConcurrency sets how many records are judged in parallel.
func WithConcurrency(n int) EvaluationOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithJudgeTimeout sets the per-record judge call timeout.
func WithJudgeTimeout(d time.Duration) EvaluationOption {
	return func(s *EvaluationService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLimit caps judge calls at n requests per second across all
// workers. Zero or negative disables rate limiting.
func WithRateLimit(n float64) EvaluationOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(
	logStore driven.LogStore,
	judgeFactory driven.JudgeFactory,
	opts ...EvaluationOption,
) *EvaluationService {
	s := &EvaluationService{
		logStore:     logStore,
		judgeFactory: judgeFactory,
		concurrency:  DefaultEvalConcurrency,
		timeout:      DefaultJudgeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadEvalSet loads all parseable AI-generated records from the log
// store. Files that fail to parse are skipped with a warning so one
// corrupt log cannot abort an evaluation run.
func (s *EvaluationService) LoadEvalSet(ctx context.Context) ([]domain.LogRecord, error) {
	names, err := s.logStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	records := make([]domain.LogRecord, 0, len(names))
	for _, name := range names {
		rec, err := s.logStore.Load(ctx, name)
		if err != nil {
			logger.Warn("Skipping unparseable log %s: %v", name, err)
			continue
		}
		if rec.Source != domain.SourceAIGenerated {
			logger.Debug("Skipping %s: source=%q", name, rec.Source)
			continue
		}
		records = append(records, *rec)
	}
	logger.Info("Evaluation set: %d of %d logs", len(records), len(names))
	return records, nil
}

// Run judges every record concurrently and returns one results row per
// successfully judged record, in input order. A record whose judge call
// fails is reported and excluded; it never aborts the run.
func (s *EvaluationService) Run(ctx context.Context, records []domain.LogRecord) ([]domain.ResultsRow, error) {
	logger.Section("Evaluation Run")
	logger.Info("Judging %d records (concurrency=%d)", len(records), s.concurrency)

	rows := make([]*domain.ResultsRow, len(records))
	var mu sync.Mutex
	var done int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range records {
		g.Go(func() error {
			rec := &records[i]

			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			row, err := s.judgeOne(gctx, rec)

			mu.Lock()
			done++
			n := done
			mu.Unlock()

			if err != nil {
				logger.Error("Judge failed for %s: %v", rec.LogFile, err)
				return nil
			}
			rows[i] = row
			logger.Info("Judged %d/%d: %s", n, len(records), rec.LogFile)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation run: %w", err)
	}

	out := make([]domain.ResultsRow, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			out = append(out, *row)
		}
	}
	logger.Info("Evaluation complete: %d/%d records judged", len(out), len(records))
	return out, nil
}

// judgeOne evaluates a single record with a fresh judge instance.
func (s *EvaluationService) judgeOne(ctx context.Context, rec *domain.LogRecord) (*domain.ResultsRow, error) {
	if len(rec.Messages) == 0 {
		return nil, domain.ErrEmptyTranscript
	}

	judge, err := s.judgeFactory()
	if err != nil {
		return nil, fmt.Errorf("create judge: %w", err)
	}

	jctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	checklist, err := judge.Evaluate(jctx, rec)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", rec.LogFile, err)
	}

	row := domain.NewResultsRow(rec, checklist)
	return &row, nil
}

// WriteCSV writes results rows to a CSV file at path. Columns are
// log_file, source, model, then one column per check. A check absent
// from a row yields an empty cell.
func (s *EvaluationService) WriteCSV(rows []domain.ResultsRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	columns := domain.CheckColumns(rows)

	header := append([]string{"log_file", "source", "model"}, columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.LogFile, row.Source, row.Model}
		for _, col := range columns {
			pass, ok := row.Checks[col]
			switch {
			case !ok:
				record = append(record, "")
			case pass:
				record = append(record, "true")
			default:
				record = append(record, "false")
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.LogFile, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

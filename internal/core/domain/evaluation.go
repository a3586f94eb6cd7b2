package domain

import "sort"

// ChecklistChecks are the rubric's check names, in canonical column order.
var ChecklistChecks = []string{
	"instructions_follow",
	"instructions_avoid",
	"answer_relevant",
	"answer_clear",
	"answer_citations",
	"completeness",
	"factual",
	"tool_call_search",
}

// EvaluationCheck is one judged rubric item.
type EvaluationCheck struct {
	CheckName     string `json:"check_name"`
	Justification string `json:"justification"`
	CheckPass     bool   `json:"check_pass"`
}

// EvaluationChecklist is the judge's verdict for one log record.
// It is ephemeral: reduced immediately into a ResultsRow.
type EvaluationChecklist struct {
	Checks  []EvaluationCheck `json:"checks"`
	Summary string            `json:"summary"`
}

// ResultsRow is one row of the evaluation results table: the record's
// metadata plus one boolean column per check the judge returned.
type ResultsRow struct {
	LogFile string
	Source  string
	Model   string
	Checks  map[string]bool
}

// NewResultsRow reduces a checklist into a results row for a record.
func NewResultsRow(rec *LogRecord, checklist EvaluationChecklist) ResultsRow {
	row := ResultsRow{
		LogFile: rec.LogFile,
		Source:  rec.Source,
		Model:   rec.Model,
		Checks:  make(map[string]bool, len(checklist.Checks)),
	}
	for _, c := range checklist.Checks {
		row.Checks[c.CheckName] = c.CheckPass
	}
	return row
}

// CheckColumns returns the union of check names across rows: the
// canonical rubric checks first (those present in any row), then any
// extra columns the judge produced, sorted.
func CheckColumns(rows []ResultsRow) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for name := range row.Checks {
			present[name] = true
		}
	}

	columns := make([]string, 0, len(present))
	for _, name := range ChecklistChecks {
		if present[name] {
			columns = append(columns, name)
			delete(present, name)
		}
	}

	extras := make([]string, 0, len(present))
	for name := range present {
		extras = append(extras, name)
	}
	sort.Strings(extras)

	return append(columns, extras...)
}

// PassRates computes the per-check pass rate over rows that carry the
// check. Rows missing a check do not count toward its denominator.
func PassRates(rows []ResultsRow) map[string]float64 {
	passes := make(map[string]int)
	totals := make(map[string]int)
	for _, row := range rows {
		for name, pass := range row.Checks {
			totals[name]++
			if pass {
				passes[name]++
			}
		}
	}

	rates := make(map[string]float64, len(totals))
	for name, total := range totals {
		rates[name] = float64(passes[name]) / float64(total)
	}
	return rates
}

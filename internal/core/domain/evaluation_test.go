package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResultsRow(t *testing.T) {
	rec := &LogRecord{
		LogFile: "search_docs_20260830_100000_abc123.json",
		Source:  SourceAIGenerated,
		Model:   "gpt-4o-mini",
	}
	checklist := EvaluationChecklist{
		Checks: []EvaluationCheck{
			{CheckName: "answer_relevant", CheckPass: true},
			{CheckName: "factual", CheckPass: false},
		},
		Summary: "mixed",
	}

	row := NewResultsRow(rec, checklist)

	assert.Equal(t, rec.LogFile, row.LogFile)
	assert.Equal(t, SourceAIGenerated, row.Source)
	assert.Equal(t, "gpt-4o-mini", row.Model)
	assert.Equal(t, map[string]bool{"answer_relevant": true, "factual": false}, row.Checks)
}

func TestCheckColumns_CanonicalOrderThenExtras(t *testing.T) {
	rows := []ResultsRow{
		{Checks: map[string]bool{"factual": true, "zz_extra": true}},
		{Checks: map[string]bool{"answer_relevant": false, "aa_extra": true}},
	}

	columns := CheckColumns(rows)

	assert.Equal(t, []string{"answer_relevant", "factual", "aa_extra", "zz_extra"}, columns)
}

func TestCheckColumns_Empty(t *testing.T) {
	assert.Empty(t, CheckColumns(nil))
}

func TestPassRates(t *testing.T) {
	rows := []ResultsRow{
		{Checks: map[string]bool{"factual": true, "completeness": true}},
		{Checks: map[string]bool{"factual": false, "completeness": true}},
		{Checks: map[string]bool{"factual": true}},
	}

	rates := PassRates(rows)

	assert.InDelta(t, 2.0/3.0, rates["factual"], 1e-9)
	// Rows missing a check do not count toward its denominator.
	assert.InDelta(t, 1.0, rates["completeness"], 1e-9)
}

// Package openai provides the LLM judge that scores assistant
// transcripts against the evaluation checklist.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure Judge implements the interface.
var _ driven.Judge = (*Judge)(nil)

const systemPrompt = `Use this checklist to evaluate the quality of an AI agent's answer (<ANSWER>) to a user question (<QUESTION>).
We also include the entire log (<LOG>) for analysis.

For each item, check if the condition is met.

Checklist:

- instructions_follow: The agent followed the user's instructions (in <INSTRUCTIONS>)
- instructions_avoid: The agent avoided doing things it was told not to do
- answer_relevant: The response directly addresses the user's question
- answer_clear: The answer is clear and correct
- answer_citations: The response includes proper citations or sources when required
- completeness: The response is complete and covers all key aspects of the request
- factual: The response was not hallucinated and covers actual facts
- tool_call_search: Is the search tool invoked?

Output true/false for each check and provide a short explanation for your judgment.

Respond with a JSON object of this shape:
{"checks": [{"check_name": "...", "justification": "...", "check_pass": true}], "summary": "..."}`

const userPromptTemplate = `<INSTRUCTIONS>%s</INSTRUCTIONS>
<QUESTION>%s</QUESTION>
<ANSWER>%s</ANSWER>
<LOG>%s</LOG>`

// Judge evaluates one transcript per call using an LLM service.
type Judge struct {
	llm driven.LLMService
}

// New creates a judge backed by the given LLM service.
func New(llm driven.LLMService) (*Judge, error) {
	if llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	return &Judge{llm: llm}, nil
}

// Evaluate builds the judge prompt from the record's question, answer
// and redacted transcript, and parses the model's checklist verdict.
func (j *Judge) Evaluate(ctx context.Context, rec *domain.LogRecord) (domain.EvaluationChecklist, error) {
	var checklist domain.EvaluationChecklist

	if len(rec.Messages) == 0 {
		return checklist, domain.ErrEmptyTranscript
	}

	redacted := domain.RedactMessages(rec.Messages)
	logJSON, err := json.Marshal(redacted)
	if err != nil {
		return checklist, fmt.Errorf("marshal transcript: %w", err)
	}

	prompt := fmt.Sprintf(userPromptTemplate,
		rec.SystemPrompt, rec.Question(), rec.Answer(), string(logJSON))

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	raw, err := j.llm.ChatJSON(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return checklist, fmt.Errorf("judge call: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &checklist); err != nil {
		return checklist, fmt.Errorf("parse judge verdict: %w", err)
	}
	return checklist, nil
}

package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

type fakeLLM struct {
	response string
	err      error
	messages []driven.ChatMessage
}

func (f *fakeLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Chat(context.Context, []driven.ChatMessage, driven.ChatOptions) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) ChatJSON(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.messages = messages
	return f.response, f.err
}

func (f *fakeLLM) ModelName() string { return "fake" }

func (f *fakeLLM) Ping(context.Context) error { return nil }

func (f *fakeLLM) Close() error { return nil }

func judgedRecord() *domain.LogRecord {
	return &domain.LogRecord{
		SystemPrompt: "be helpful",
		Model:        "gpt-4o-mini",
		Messages: []domain.Message{
			{
				Kind:  domain.MessageKindRequest,
				Parts: []domain.Part{{PartKind: domain.PartKindUserPrompt, Content: "what is it?"}},
			},
			{
				Kind: domain.MessageKindRequest,
				Parts: []domain.Part{{
					PartKind:   domain.PartKindToolReturn,
					ToolName:   "search",
					Content:    "a very large tool payload",
					ToolCallID: "call_1",
				}},
			},
			{
				Kind:  domain.MessageKindResponse,
				Parts: []domain.Part{{PartKind: domain.PartKindText, Content: "it is a tool"}},
			},
		},
	}
}

func TestNew_RequiresLLM(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestEvaluate(t *testing.T) {
	llm := &fakeLLM{response: `{"checks":[{"check_name":"answer_relevant","justification":"on topic","check_pass":true},{"check_name":"factual","justification":"made up","check_pass":false}],"summary":"mixed"}`}
	judge, err := New(llm)
	require.NoError(t, err)

	checklist, err := judge.Evaluate(context.Background(), judgedRecord())
	require.NoError(t, err)

	require.Len(t, checklist.Checks, 2)
	assert.Equal(t, "answer_relevant", checklist.Checks[0].CheckName)
	assert.True(t, checklist.Checks[0].CheckPass)
	assert.False(t, checklist.Checks[1].CheckPass)
	assert.Equal(t, "mixed", checklist.Summary)
}

func TestEvaluate_PromptContents(t *testing.T) {
	llm := &fakeLLM{response: `{"checks":[],"summary":""}`}
	judge, err := New(llm)
	require.NoError(t, err)

	_, err = judge.Evaluate(context.Background(), judgedRecord())
	require.NoError(t, err)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Contains(t, llm.messages[0].Content, "instructions_follow")
	assert.Contains(t, llm.messages[0].Content, "tool_call_search")

	user := llm.messages[1].Content
	assert.Contains(t, user, "<INSTRUCTIONS>be helpful</INSTRUCTIONS>")
	assert.Contains(t, user, "<QUESTION>what is it?</QUESTION>")
	assert.Contains(t, user, "<ANSWER>it is a tool</ANSWER>")

	// Tool returns are redacted out of the embedded log.
	assert.Contains(t, user, domain.RedactedContent)
	assert.NotContains(t, user, "a very large tool payload")
}

func TestEvaluate_EmptyTranscript(t *testing.T) {
	judge, err := New(&fakeLLM{})
	require.NoError(t, err)

	_, err = judge.Evaluate(context.Background(), &domain.LogRecord{})
	assert.ErrorIs(t, err, domain.ErrEmptyTranscript)
}

func TestEvaluate_LLMError(t *testing.T) {
	judge, err := New(&fakeLLM{err: errors.New("quota exceeded")})
	require.NoError(t, err)

	_, err = judge.Evaluate(context.Background(), judgedRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestEvaluate_MalformedVerdict(t *testing.T) {
	judge, err := New(&fakeLLM{response: "not json"})
	require.NoError(t, err)

	_, err = judge.Evaluate(context.Background(), judgedRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse judge verdict")
}

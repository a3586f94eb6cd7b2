package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transcriptFixture() []Message {
	return []Message{
		{
			Kind: MessageKindRequest,
			Parts: []Part{{
				PartKind:  PartKindUserPrompt,
				Content:   "How do I install it?",
				Timestamp: "2026-08-30T10:00:00Z",
			}},
		},
		{
			Kind: MessageKindResponse,
			Parts: []Part{{
				PartKind:   PartKindToolCall,
				ToolName:   "search",
				Args:       map[string]any{"query": "install"},
				ToolCallID: "call_1",
			}},
			Timestamp: "2026-08-30T10:00:01Z",
		},
		{
			Kind: MessageKindRequest,
			Parts: []Part{{
				PartKind:   PartKindToolReturn,
				ToolName:   "search",
				Content:    []any{map[string]any{"filename": "INSTALL.md"}},
				ToolCallID: "call_1",
				Timestamp:  "2026-08-30T10:00:02Z",
				Metadata:   map[string]any{"duration_ms": 12},
			}},
		},
		{
			Kind: MessageKindResponse,
			Parts: []Part{{
				PartKind: PartKindText,
				Content:  "Run the installer.",
				ID:       "msg_1",
			}},
			Timestamp: "2026-08-30T10:00:03Z",
		},
	}
}

func TestRedactMessages_StripsVolatileFields(t *testing.T) {
	redacted := RedactMessages(transcriptFixture())
	require.Len(t, redacted, 4)

	prompt := redacted[0].Parts[0]
	assert.Empty(t, prompt.Timestamp)
	assert.Equal(t, "How do I install it?", prompt.Content)

	call := redacted[1].Parts[0]
	assert.Empty(t, call.ToolCallID)
	assert.Equal(t, "search", call.ToolName)
	assert.NotNil(t, call.Args)

	ret := redacted[2].Parts[0]
	assert.Empty(t, ret.ToolCallID)
	assert.Empty(t, ret.Timestamp)
	assert.Nil(t, ret.Metadata)
	assert.Equal(t, RedactedContent, ret.Content)

	text := redacted[3].Parts[0]
	assert.Empty(t, text.ID)
	assert.Equal(t, "Run the installer.", text.Content)
}

func TestRedactMessages_Idempotent(t *testing.T) {
	once := RedactMessages(transcriptFixture())
	twice := RedactMessages(once)
	assert.Equal(t, once, twice)
}

func TestRedactMessages_DoesNotModifyInput(t *testing.T) {
	messages := transcriptFixture()
	RedactMessages(messages)

	assert.Equal(t, "2026-08-30T10:00:00Z", messages[0].Parts[0].Timestamp)
	assert.Equal(t, "call_1", messages[2].Parts[0].ToolCallID)
	assert.NotEqual(t, RedactedContent, messages[2].Parts[0].Content)
	assert.Equal(t, "msg_1", messages[3].Parts[0].ID)
}

func TestLogRecord_QuestionAndAnswer(t *testing.T) {
	rec := LogRecord{Messages: transcriptFixture()}
	assert.Equal(t, "How do I install it?", rec.Question())
	assert.Equal(t, "Run the installer.", rec.Answer())
}

func TestLogRecord_QuestionAndAnswer_Empty(t *testing.T) {
	rec := LogRecord{}
	assert.Empty(t, rec.Question())
	assert.Empty(t, rec.Answer())
}

func TestLogRecord_NonStringContent(t *testing.T) {
	rec := LogRecord{Messages: []Message{{
		Kind:  MessageKindRequest,
		Parts: []Part{{PartKind: PartKindToolReturn, Content: []any{"x"}}},
	}}}
	assert.Empty(t, rec.Question())
}

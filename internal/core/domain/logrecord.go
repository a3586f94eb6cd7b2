package domain

// Part kinds mirror the conversation part taxonomy of the agent runtime.
const (
	PartKindUserPrompt = "user-prompt"
	PartKindText       = "text"
	PartKindToolCall   = "tool-call"
	PartKindToolReturn = "tool-return"
)

// Message kinds. Requests carry user prompts and tool returns toward
// the model; responses carry model text and tool calls back.
const (
	MessageKindRequest  = "request"
	MessageKindResponse = "response"
)

// Log record sources. Only ai-generated records enter the evaluation set.
const (
	SourceUser        = "user"
	SourceAIGenerated = "ai-generated"
)

// RedactedContent replaces tool-return payloads before judging to
// bound the judge prompt size.
const RedactedContent = "RETURN_RESULTS_REDACTED"

// Part is one tagged segment of a conversation message. PartKind
// selects which of the optional fields are meaningful; absent fields
// are omitted from JSON.
type Part struct {
	PartKind   string         `json:"part_kind"`
	Content    any            `json:"content,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	ID         string         `json:"id,omitempty"`
	ToolName   string         `json:"tool_name,omitempty"`
	Args       any            `json:"args,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Message is one conversation turn, composed of parts.
type Message struct {
	Kind      string `json:"kind"`
	Parts     []Part `json:"parts"`
	Timestamp string `json:"timestamp,omitempty"`
}

// LogRecord is the persisted transcript of one assistant interaction.
// It is written once per interaction and immutable on disk thereafter.
type LogRecord struct {
	AgentName    string    `json:"agent_name"`
	SystemPrompt string    `json:"system_prompt"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Tools        []string  `json:"tools"`
	Messages     []Message `json:"messages"`
	Source       string    `json:"source"`

	// LogFile is the base name of the file the record was loaded from.
	// Set by the log store on load, not persisted inside the file.
	LogFile string `json:"log_file,omitempty"`
}

// RedactMessages strips volatile and oversized fields from a transcript
// before it is embedded into a judge prompt. The input is not modified.
//
// Per part kind: user-prompt drops its timestamp, tool-call drops its
// call id, tool-return drops call id, metadata and timestamp and has
// its content replaced with RedactedContent, text drops its id.
// Fields already absent are a no-op, so redaction is idempotent.
func RedactMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		parts := make([]Part, len(m.Parts))
		for j, p := range m.Parts {
			switch p.PartKind {
			case PartKindUserPrompt:
				p.Timestamp = ""
			case PartKindToolCall:
				p.ToolCallID = ""
			case PartKindToolReturn:
				p.ToolCallID = ""
				p.Metadata = nil
				p.Timestamp = ""
				p.Content = RedactedContent
			case PartKindText:
				p.ID = ""
			}
			parts[j] = p
		}
		out[i] = Message{Kind: m.Kind, Parts: parts}
	}
	return out
}

// Question returns the content of the first part of the first message,
// which by convention is the user's question.
func (r *LogRecord) Question() string {
	return firstPartContent(r.Messages, 0)
}

// Answer returns the content of the first part of the last message,
// which by convention is the assistant's final answer.
func (r *LogRecord) Answer() string {
	return firstPartContent(r.Messages, len(r.Messages)-1)
}

func firstPartContent(messages []Message, idx int) string {
	if idx < 0 || idx >= len(messages) {
		return ""
	}
	parts := messages[idx].Parts
	if len(parts) == 0 {
		return ""
	}
	if s, ok := parts[0].Content.(string); ok {
		return s
	}
	return ""
}

package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// SearchTool is the single-parameter callable an agent may invoke to
// query the index. It must be safe for repeated and concurrent calls:
// an agent may issue multiple searches per turn.
type SearchTool func(ctx context.Context, query string) ([]domain.SearchResult, error)

// AgentResult is the outcome of one agent run.
type AgentResult struct {
	// Answer is the assistant's final text response.
	Answer string

	// NewMessages are the transcript messages this run produced,
	// including tool calls and returns.
	NewMessages []domain.Message
}

// Agent drives one question through the assistant runtime: prompt in,
// answer plus transcript out. The runtime decides when to call the
// search tool.
type Agent interface {
	// Run answers a single user prompt given prior conversation history.
	Run(ctx context.Context, prompt string, history []domain.Message) (*AgentResult, error)

	// Name returns the agent name used in log record file names.
	Name() string

	// SystemPrompt returns the agent's instructions.
	SystemPrompt() string

	// Provider returns the model provider identifier.
	Provider() string

	// Model returns the model name.
	Model() string

	// ToolNames lists the tools available to the agent.
	ToolNames() []string
}

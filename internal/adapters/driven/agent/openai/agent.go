// Package openai provides the assistant agent runtime on the OpenAI
// chat completions API. The agent answers documentation questions and
// may call the search tool any number of times per turn; the full
// exchange, tool calls included, is recorded as transcript messages.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Agent implements the interface.
var _ driven.Agent = (*Agent)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second

	// AgentName identifies this agent in log record file names.
	AgentName = "search_docs"

	// SearchToolName is the function name exposed to the model.
	SearchToolName = "search"

	// MaxToolRounds bounds how many tool-call rounds one prompt may
	// take before the run is aborted.
	MaxToolRounds = 6

	// maxToolResults caps how many search hits are returned per call.
	maxToolResults = 5

	providerName = "openai"
)

const systemPromptTemplate = `You are a helpful assistant for documentation

Use the search tool to find relevant information from the document materials before answering questions.

If you can find specific information through search, use it to provide accurate answers.
Before providing an answer please make certain checks:
- The response directly addresses the user's question
- The answer is clear and correct
- The response includes proper citations or sources when required
- The response is complete and covers all key aspects of the request
- The response was not hallucinated and covers actual facts


Finally Always include references by citing the filename of the source material you used.
When citing the reference, construct the link to the GitHub repository: "https://github.com/%[1]s/%[2]s/blob/main/{filename}"
Format: [filename](https://github.com/%[1]s/%[2]s/blob/main/filename)

If the search doesn't return relevant results, let the user know and provide general guidance.`

// Config holds configuration for the agent.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Owner and Repo identify the repository, used to build citation
	// links in the system prompt.
	Owner string
	Repo  string
}

// Agent answers documentation questions with search tool access.
type Agent struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	search       driven.SearchTool
}

// New creates an agent bound to one repository and one search tool.
func New(cfg Config, search driven.SearchTool) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if search == nil {
		return nil, fmt.Errorf("openai: search tool is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Agent{
		client:       &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		systemPrompt: fmt.Sprintf(systemPromptTemplate, cfg.Owner, cfg.Repo),
		search:       search,
	}, nil
}

// Name returns the agent name.
func (a *Agent) Name() string { return AgentName }

// SystemPrompt returns the agent's instructions.
func (a *Agent) SystemPrompt() string { return a.systemPrompt }

// Provider returns the model provider identifier.
func (a *Agent) Provider() string { return providerName }

// Model returns the model name.
func (a *Agent) Model() string { return a.model }

// ToolNames lists the tools available to the agent.
func (a *Agent) ToolNames() []string { return []string{SearchToolName} }

// Run answers a single user prompt given prior conversation history.
func (a *Agent) Run(ctx context.Context, prompt string, history []domain.Message) (*driven.AgentResult, error) {
	wire := a.wireHistory(history)
	wire = append(wire, wireMessage{Role: "user", Content: prompt})

	transcript := []domain.Message{{
		Kind: domain.MessageKindRequest,
		Parts: []domain.Part{{
			PartKind:  domain.PartKindUserPrompt,
			Content:   prompt,
			Timestamp: now(),
		}},
	}}

	for round := 0; round < MaxToolRounds; round++ {
		resp, err := a.chat(ctx, wire)
		if err != nil {
			return nil, err
		}

		if len(resp.ToolCalls) == 0 {
			transcript = append(transcript, domain.Message{
				Kind: domain.MessageKindResponse,
				Parts: []domain.Part{{
					PartKind: domain.PartKindText,
					Content:  resp.Content,
					ID:       uuid.NewString(),
				}},
				Timestamp: now(),
			})
			return &driven.AgentResult{Answer: resp.Content, NewMessages: transcript}, nil
		}

		wire = append(wire, wireMessage{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		callParts := make([]domain.Part, 0, len(resp.ToolCalls))
		returnParts := make([]domain.Part, 0, len(resp.ToolCalls))

		for _, call := range resp.ToolCalls {
			result, err := a.invokeTool(ctx, call)
			if err != nil {
				return nil, err
			}

			callParts = append(callParts, domain.Part{
				PartKind:   domain.PartKindToolCall,
				ToolName:   call.Function.Name,
				Args:       json.RawMessage(call.Function.Arguments),
				ToolCallID: call.ID,
			})
			returnParts = append(returnParts, domain.Part{
				PartKind:   domain.PartKindToolReturn,
				ToolName:   call.Function.Name,
				Content:    result,
				ToolCallID: call.ID,
				Timestamp:  now(),
			})

			payload, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("marshal tool result: %w", err)
			}
			wire = append(wire, wireMessage{
				Role:       "tool",
				Content:    string(payload),
				ToolCallID: call.ID,
			})
		}

		transcript = append(transcript,
			domain.Message{Kind: domain.MessageKindResponse, Parts: callParts, Timestamp: now()},
			domain.Message{Kind: domain.MessageKindRequest, Parts: returnParts},
		)
	}

	return nil, fmt.Errorf("agent exceeded %d tool rounds without answering", MaxToolRounds)
}

// invokeTool dispatches one model tool call to the search tool.
func (a *Agent) invokeTool(ctx context.Context, call wireToolCall) (any, error) {
	if call.Function.Name != SearchToolName {
		return nil, fmt.Errorf("unknown tool %q", call.Function.Name)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("parse tool arguments: %w", err)
	}
	logger.Debug("Tool call: %s(%q)", call.Function.Name, args.Query)

	results, err := a.search(ctx, args.Query)
	if err != nil {
		return nil, fmt.Errorf("search tool: %w", err)
	}
	if len(results) > maxToolResults {
		results = results[:maxToolResults]
	}
	logger.Debug("Tool returned %d results", len(results))

	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"filename": r.Chunk.Filename,
			"title":    r.Chunk.Title,
			"content":  r.Chunk.Text(),
			"score":    r.Score,
		})
	}
	return out, nil
}

// wireHistory converts prior transcript messages to API messages.
// Only user prompts and assistant text are replayed; past tool traffic
// stays in the log but is not resent.
func (a *Agent) wireHistory(history []domain.Message) []wireMessage {
	wire := []wireMessage{{Role: "system", Content: a.systemPrompt}}
	for _, m := range history {
		for _, p := range m.Parts {
			content, ok := p.Content.(string)
			if !ok {
				continue
			}
			switch p.PartKind {
			case domain.PartKindUserPrompt:
				wire = append(wire, wireMessage{Role: "user", Content: content})
			case domain.PartKindText:
				wire = append(wire, wireMessage{Role: "assistant", Content: content})
			}
		}
	}
	return wire
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

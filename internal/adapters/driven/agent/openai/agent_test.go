package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// fakeAPI replays canned /chat/completions responses in order and
// records every request body it sees.
type fakeAPI struct {
	t         *testing.T
	responses []string
	requests  []chatRequest
}

func (f *fakeAPI) handler(w http.ResponseWriter, r *http.Request) {
	require.Equal(f.t, "/chat/completions", r.URL.Path)
	require.Equal(f.t, "Bearer test-key", r.Header.Get("Authorization"))

	var req chatRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
	f.requests = append(f.requests, req)

	require.NotEmpty(f.t, f.responses, "more requests than canned responses")
	resp := f.responses[0]
	f.responses = f.responses[1:]
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(resp)) //nolint:errcheck
}

func textResponse(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func toolCallResponse(id, arguments string) string {
	return `{"choices":[{"message":{"content":"","tool_calls":[{"id":"` + id +
		`","type":"function","function":{"name":"search","arguments":` + mustJSON(arguments) +
		`}}]},"finish_reason":"tool_calls"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s) //nolint:errcheck
	return string(b)
}

func newTestAgent(t *testing.T, api *fakeAPI, results []domain.SearchResult) *Agent {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(srv.Close)

	agent, err := New(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Owner:   "acme",
		Repo:    "widgets",
	}, func(context.Context, string) ([]domain.SearchResult, error) {
		return results, nil
	})
	require.NoError(t, err)
	return agent
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, func(context.Context, string) ([]domain.SearchResult, error) { return nil, nil })
	assert.Error(t, err)

	_, err = New(Config{APIKey: "k"}, nil)
	assert.Error(t, err)
}

func TestAgent_Metadata(t *testing.T) {
	agent := newTestAgent(t, &fakeAPI{t: t}, nil)

	assert.Equal(t, AgentName, agent.Name())
	assert.Equal(t, "openai", agent.Provider())
	assert.Equal(t, DefaultModel, agent.Model())
	assert.Equal(t, []string{SearchToolName}, agent.ToolNames())
	assert.Contains(t, agent.SystemPrompt(), "https://github.com/acme/widgets/blob/main/")
}

func TestRun_DirectAnswer(t *testing.T) {
	api := &fakeAPI{t: t, responses: []string{textResponse("The answer.")}}
	agent := newTestAgent(t, api, nil)

	result, err := agent.Run(context.Background(), "question?", nil)
	require.NoError(t, err)

	assert.Equal(t, "The answer.", result.Answer)

	// One request message and one response message.
	require.Len(t, result.NewMessages, 2)
	req := result.NewMessages[0]
	assert.Equal(t, domain.MessageKindRequest, req.Kind)
	assert.Equal(t, domain.PartKindUserPrompt, req.Parts[0].PartKind)
	assert.Equal(t, "question?", req.Parts[0].Content)
	assert.NotEmpty(t, req.Parts[0].Timestamp)

	resp := result.NewMessages[1]
	assert.Equal(t, domain.MessageKindResponse, resp.Kind)
	assert.Equal(t, domain.PartKindText, resp.Parts[0].PartKind)
	assert.NotEmpty(t, resp.Parts[0].ID)

	// The wire request leads with the system prompt and declares the tool.
	require.Len(t, api.requests, 1)
	assert.Equal(t, "system", api.requests[0].Messages[0].Role)
	require.Len(t, api.requests[0].Tools, 1)
	assert.Equal(t, SearchToolName, api.requests[0].Tools[0].Function.Name)
}

func TestRun_ToolRound(t *testing.T) {
	api := &fakeAPI{t: t, responses: []string{
		toolCallResponse("call_1", `{"query":"install"}`),
		textResponse("Install with make."),
	}}
	results := []domain.SearchResult{
		{Chunk: domain.Chunk{Filename: "install.md", Title: "Install", Content: "make install"}, Score: 1.5},
	}
	agent := newTestAgent(t, api, results)

	result, err := agent.Run(context.Background(), "how to install?", nil)
	require.NoError(t, err)

	assert.Equal(t, "Install with make.", result.Answer)

	// prompt, tool-call, tool-return, final text.
	require.Len(t, result.NewMessages, 4)

	call := result.NewMessages[1]
	assert.Equal(t, domain.MessageKindResponse, call.Kind)
	assert.Equal(t, domain.PartKindToolCall, call.Parts[0].PartKind)
	assert.Equal(t, SearchToolName, call.Parts[0].ToolName)
	assert.Equal(t, "call_1", call.Parts[0].ToolCallID)

	ret := result.NewMessages[2]
	assert.Equal(t, domain.MessageKindRequest, ret.Kind)
	assert.Equal(t, domain.PartKindToolReturn, ret.Parts[0].PartKind)
	assert.Equal(t, "call_1", ret.Parts[0].ToolCallID)

	payload, ok := ret.Parts[0].Content.([]map[string]any)
	require.True(t, ok)
	require.Len(t, payload, 1)
	assert.Equal(t, "install.md", payload[0]["filename"])

	// The second API request carries the tool result back to the model.
	require.Len(t, api.requests, 2)
	second := api.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.Contains(t, last.Content, "install.md")
}

func TestRun_TruncatesToolResults(t *testing.T) {
	api := &fakeAPI{t: t, responses: []string{
		toolCallResponse("call_1", `{"query":"q"}`),
		textResponse("done"),
	}}
	results := make([]domain.SearchResult, 8)
	for i := range results {
		results[i] = domain.SearchResult{Chunk: domain.Chunk{Filename: "f.md", Content: "c"}}
	}
	agent := newTestAgent(t, api, results)

	result, err := agent.Run(context.Background(), "q", nil)
	require.NoError(t, err)

	payload, ok := result.NewMessages[2].Parts[0].Content.([]map[string]any)
	require.True(t, ok)
	assert.Len(t, payload, maxToolResults)
}

func TestRun_ReplaysHistory(t *testing.T) {
	api := &fakeAPI{t: t, responses: []string{textResponse("second answer")}}
	agent := newTestAgent(t, api, nil)

	history := []domain.Message{
		{Kind: domain.MessageKindRequest, Parts: []domain.Part{{PartKind: domain.PartKindUserPrompt, Content: "first question"}}},
		{Kind: domain.MessageKindResponse, Parts: []domain.Part{{PartKind: domain.PartKindToolCall, ToolName: "search"}}},
		{Kind: domain.MessageKindResponse, Parts: []domain.Part{{PartKind: domain.PartKindText, Content: "first answer"}}},
	}
	_, err := agent.Run(context.Background(), "second question", history)
	require.NoError(t, err)

	require.Len(t, api.requests, 1)
	messages := api.requests[0].Messages

	// system, replayed user + assistant text, new prompt. Tool traffic
	// is not resent.
	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "first question", messages[1].Content)
	assert.Equal(t, "assistant", messages[2].Role)
	assert.Equal(t, "first answer", messages[2].Content)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "second question", messages[3].Content)
}

func TestRun_UnknownToolFails(t *testing.T) {
	api := &fakeAPI{t: t, responses: []string{
		`{"choices":[{"message":{"content":"","tool_calls":[{"id":"x","type":"function","function":{"name":"delete_everything","arguments":"{}"}}]},"finish_reason":"tool_calls"}]}`,
	}}
	agent := newTestAgent(t, api, nil)

	_, err := agent.Run(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestRun_ExceedsToolRounds(t *testing.T) {
	responses := make([]string, MaxToolRounds)
	for i := range responses {
		responses[i] = toolCallResponse("call", `{"query":"q"}`)
	}
	api := &fakeAPI{t: t, responses: responses}
	agent := newTestAgent(t, api, nil)

	_, err := agent.Run(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool rounds")
}

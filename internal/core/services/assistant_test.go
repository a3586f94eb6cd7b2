package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

type stubAgent struct {
	answer string
	err    error
	prompt string
	seen   int
}

func (a *stubAgent) Run(_ context.Context, prompt string, history []domain.Message) (*driven.AgentResult, error) {
	a.prompt = prompt
	a.seen = len(history)
	if a.err != nil {
		return nil, a.err
	}
	return &driven.AgentResult{
		Answer: a.answer,
		NewMessages: []domain.Message{
			{Kind: domain.MessageKindRequest, Parts: []domain.Part{{PartKind: domain.PartKindUserPrompt, Content: prompt}}},
			{Kind: domain.MessageKindResponse, Parts: []domain.Part{{PartKind: domain.PartKindText, Content: a.answer}}},
		},
	}, nil
}

func (a *stubAgent) Name() string { return "stub_agent" }

func (a *stubAgent) SystemPrompt() string { return "be helpful" }

func (a *stubAgent) Provider() string { return "stub" }

func (a *stubAgent) Model() string { return "stub-1" }

func (a *stubAgent) ToolNames() []string { return []string{"search"} }

type memLogStore struct {
	records []domain.LogRecord
	err     error
}

func (s *memLogStore) Write(_ context.Context, rec *domain.LogRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.records = append(s.records, *rec)
	return "stub.json", nil
}

func (s *memLogStore) List(context.Context) ([]string, error) {
	names := make([]string, len(s.records))
	for i := range s.records {
		names[i] = "stub.json"
	}
	return names, nil
}

func (s *memLogStore) Load(_ context.Context, _ string) (*domain.LogRecord, error) {
	if len(s.records) == 0 {
		return nil, domain.ErrNotFound
	}
	rec := s.records[0]
	rec.LogFile = "stub.json"
	return &rec, nil
}

func TestAsk(t *testing.T) {
	agent := &stubAgent{answer: "Use make install."}
	store := &memLogStore{}
	svc := NewAssistantService(agent, store)

	session := svc.NewSession("acme", "widgets")
	answer, err := svc.Ask(context.Background(), session, "how do I install?")
	require.NoError(t, err)

	assert.Equal(t, "Use make install.", answer)
	assert.Equal(t, "how do I install?", agent.prompt)
	assert.Len(t, session.Messages, 2)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "stub_agent", rec.AgentName)
	assert.Equal(t, "be helpful", rec.SystemPrompt)
	assert.Equal(t, "stub", rec.Provider)
	assert.Equal(t, "stub-1", rec.Model)
	assert.Equal(t, []string{"search"}, rec.Tools)
	assert.Equal(t, domain.SourceUser, rec.Source)
	assert.Len(t, rec.Messages, 2)
}

func TestAsk_HistoryAccumulates(t *testing.T) {
	agent := &stubAgent{answer: "answer"}
	svc := NewAssistantService(agent, nil)

	session := svc.NewSession("acme", "widgets")
	_, err := svc.Ask(context.Background(), session, "first")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), session, "second")
	require.NoError(t, err)

	// The second run saw the first exchange as history.
	assert.Equal(t, 2, agent.seen)
	assert.Len(t, session.Messages, 4)
}

func TestAsk_AgentError(t *testing.T) {
	agent := &stubAgent{err: errors.New("model overloaded")}
	store := &memLogStore{}
	svc := NewAssistantService(agent, store)

	session := svc.NewSession("acme", "widgets")
	_, err := svc.Ask(context.Background(), session, "q")
	require.Error(t, err)

	// Failed turns leave the session and log untouched.
	assert.Empty(t, session.Messages)
	assert.Empty(t, store.records)
}

func TestAsk_NoAgent(t *testing.T) {
	svc := NewAssistantService(nil, nil)
	session := svc.NewSession("acme", "widgets")
	_, err := svc.Ask(context.Background(), session, "q")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAsk_SessionNotReady(t *testing.T) {
	svc := NewAssistantService(&stubAgent{}, nil)
	_, err := svc.Ask(context.Background(), &domain.Session{}, "q")
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)
}

func TestAsk_LogWriteFailureDoesNotFailAnswer(t *testing.T) {
	agent := &stubAgent{answer: "answer"}
	store := &memLogStore{err: errors.New("disk full")}
	svc := NewAssistantService(agent, store)

	session := svc.NewSession("acme", "widgets")
	answer, err := svc.Ask(context.Background(), session, "q")
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

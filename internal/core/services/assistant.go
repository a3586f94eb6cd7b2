package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService runs the question-answering loop: one agent turn per
// prompt, transcript logged after every answer.
type AssistantService struct {
	agent    driven.Agent
	logStore driven.LogStore
}

// NewAssistantService creates a new assistant service.
// The logStore parameter is optional (can be nil); without it, answers
// are returned but transcripts are not persisted.
func NewAssistantService(agent driven.Agent, logStore driven.LogStore) *AssistantService {
	return &AssistantService{
		agent:    agent,
		logStore: logStore,
	}
}

// NewSession starts a conversation scoped to one repository.
func (s *AssistantService) NewSession(owner, repo string) *domain.Session {
	return domain.NewSession(owner, repo)
}

// Ask answers one prompt within a session. The agent sees the session's
// prior history; the new messages are appended on success. The full
// transcript is then written to the log store. Logging failures are
// reported but never fail the answer.
func (s *AssistantService) Ask(ctx context.Context, session *domain.Session, prompt string) (string, error) {
	if s.agent == nil {
		return "", domain.ErrLLMUnavailable
	}
	if !session.Ready() {
		return "", domain.ErrSessionNotReady
	}

	logger.Section("Assistant Turn")
	logger.Debug("Prompt: %q (history: %d messages)", prompt, len(session.Messages))

	result, err := s.agent.Run(ctx, prompt, session.Messages)
	if err != nil {
		return "", fmt.Errorf("agent run: %w", err)
	}
	session.Append(result.NewMessages...)
	logger.Debug("Agent produced %d messages", len(result.NewMessages))

	s.writeLog(ctx, session)

	return result.Answer, nil
}

// writeLog persists the session transcript on a best-effort basis.
func (s *AssistantService) writeLog(ctx context.Context, session *domain.Session) {
	if s.logStore == nil {
		return
	}

	rec := &domain.LogRecord{
		AgentName:    s.agent.Name(),
		SystemPrompt: s.agent.SystemPrompt(),
		Provider:     s.agent.Provider(),
		Model:        s.agent.Model(),
		Tools:        s.agent.ToolNames(),
		Messages:     session.Messages,
		Source:       domain.SourceUser,
	}

	name, err := s.logStore.Write(ctx, rec)
	if err != nil {
		logger.Warn("Failed to write interaction log: %v", err)
		return
	}
	logger.Debug("Interaction logged to %s", name)
}

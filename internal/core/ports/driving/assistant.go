package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// AssistantService answers user questions about an indexed repository.
type AssistantService interface {
	// NewSession starts a conversation scoped to one repository.
	NewSession(owner, repo string) *domain.Session

	// Ask answers one prompt within a session. The session's history is
	// extended with the new messages and the full transcript is written
	// to the log store on a best-effort basis.
	Ask(ctx context.Context, session *domain.Session, prompt string) (string, error)
}

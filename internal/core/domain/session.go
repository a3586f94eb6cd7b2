package domain

import "time"

// Session holds the conversation state for one interactive assistant
// session. It is created when a repository is selected, cleared when
// the repository changes, and otherwise lives for the process lifetime.
//
// Session is not safe for concurrent use; callers run one question
// at a time.
type Session struct {
	// Owner and Repo identify the selected repository.
	Owner string
	Repo  string

	// Messages is the accumulated conversation history.
	Messages []Message

	// CreatedAt is when the session was started.
	CreatedAt time.Time
}

// NewSession creates a session for the given repository.
func NewSession(owner, repo string) *Session {
	return &Session{
		Owner:     owner,
		Repo:      repo,
		CreatedAt: time.Now(),
	}
}

// Ready reports whether a repository has been selected.
func (s *Session) Ready() bool {
	return s.Owner != "" && s.Repo != ""
}

// Reset clears the conversation and switches to a new repository.
func (s *Session) Reset(owner, repo string) {
	s.Owner = owner
	s.Repo = repo
	s.Messages = nil
	s.CreatedAt = time.Now()
}

// Append adds messages produced by an agent run to the history.
func (s *Session) Append(messages ...Message) {
	s.Messages = append(s.Messages, messages...)
}

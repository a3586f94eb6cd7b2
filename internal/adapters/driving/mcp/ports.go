package mcp

import (
	"errors"

	"github.com/custodia-labs/docent/internal/core/ports/driving"
)

// ErrMissingSearchService indicates the server was built without a
// search service.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

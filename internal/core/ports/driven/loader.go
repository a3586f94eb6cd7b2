package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// Loader fetches a repository's markdown documentation.
type Loader interface {
	// Load downloads the repository's default branch archive and
	// returns one Document per markdown file. It fails with
	// domain.ErrBranchNotFound when neither main nor master exists.
	// Non-UTF8 files and files with malformed front matter are
	// skipped with a warning, not fatal.
	//
	// There is no caching: repeated calls re-download.
	Load(ctx context.Context, owner, repo string) ([]domain.Document, error)
}

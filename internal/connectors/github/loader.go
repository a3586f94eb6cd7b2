package github

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// DefaultArchiveURL is the GitHub archive download host.
const DefaultArchiveURL = "https://codeload.github.com"

// branchCandidates are tried in order when no API client is available
// to resolve the repository's actual default branch.
var branchCandidates = []string{"main", "master"}

// Loader downloads a repository snapshot and extracts its markdown
// documentation.
type Loader struct {
	baseURL    string
	httpClient *http.Client
	client     *Client
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithArchiveURL overrides the archive host. Useful for testing.
func WithArchiveURL(url string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for archive downloads.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.httpClient = c
	}
}

// WithAPIClient sets an API client used to resolve the repository's
// default branch before falling back to the main/master probe.
func WithAPIClient(c *Client) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

// NewLoader creates a repository loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		baseURL:    DefaultArchiveURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load downloads owner/repo and returns its markdown documents.
func (l *Loader) Load(ctx context.Context, owner, repo string) ([]domain.Document, error) {
	logger.Section("Repository Load")
	logger.Info("Fetching %s/%s", owner, repo)

	archive, branch, err := l.fetchArchive(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	logger.Debug("Downloaded %d bytes from branch %q", len(archive), branch)

	docs, err := l.extractDocuments(archive)
	if err != nil {
		return nil, fmt.Errorf("extract %s/%s: %w", owner, repo, err)
	}
	logger.Info("Extracted %d markdown documents", len(docs))
	return docs, nil
}

// fetchArchive downloads the zip snapshot, trying each candidate
// branch until one succeeds. A 404 means the branch does not exist and
// the next candidate is tried; any other non-200 status is fatal.
func (l *Loader) fetchArchive(ctx context.Context, owner, repo string) ([]byte, string, error) {
	branches := l.candidateBranches(ctx, owner, repo)

	for _, branch := range branches {
		url := fmt.Sprintf("%s/%s/%s/zip/refs/heads/%s", l.baseURL, owner, repo, branch)
		logger.Debug("Trying %s", url)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", fmt.Errorf("build request: %w", err)
		}

		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("fetch archive: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			logger.Debug("Branch %q not found", branch)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", fmt.Errorf("fetch archive: unexpected status %d for branch %q", resp.StatusCode, branch)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, "", fmt.Errorf("read archive: %w", err)
		}
		return body, branch, nil
	}

	return nil, "", fmt.Errorf("%s/%s: %w", owner, repo, domain.ErrBranchNotFound)
}

// candidateBranches returns the branches to probe. With an API client
// the resolved default branch goes first; the static candidates remain
// as fallback in case resolution fails or lags behind a rename.
func (l *Loader) candidateBranches(ctx context.Context, owner, repo string) []string {
	if l.client == nil {
		return branchCandidates
	}

	branch, err := l.client.ResolveDefaultBranch(ctx, owner, repo)
	if err != nil {
		logger.Warn("Default branch resolution failed: %v", err)
		return branchCandidates
	}
	logger.Debug("Default branch resolved: %q", branch)

	candidates := []string{branch}
	for _, b := range branchCandidates {
		if b != branch {
			candidates = append(candidates, b)
		}
	}
	return candidates
}

// extractDocuments walks the archive and converts each markdown file
// into a document.
func (l *Loader) extractDocuments(archive []byte) ([]domain.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	fetchedAt := time.Now().UTC()
	var docs []domain.Document

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isMarkdown(f.Name) {
			continue
		}

		filename := stripArchiveRoot(f.Name)
		if filename == "" {
			continue
		}

		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		if !utf8.Valid(content) {
			logger.Warn("Skipping %s: not valid UTF-8", filename)
			continue
		}

		meta, body, err := parseFrontMatter(string(content))
		if err != nil {
			logger.Warn("Skipping %s: %v", filename, err)
			continue
		}

		doc := domain.Document{
			ID:        uuid.NewString(),
			Filename:  filename,
			Content:   body,
			Metadata:  meta,
			FetchedAt: fetchedAt,
		}
		if title, ok := meta["title"].(string); ok {
			doc.Title = title
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// isMarkdown reports whether name has a markdown extension.
func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// stripArchiveRoot removes the top-level "{repo}-{branch}/" directory
// that GitHub prepends to every archive entry.
func stripArchiveRoot(name string) string {
	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	return rest
}

// readZipFile reads one archive entry fully.
func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout for API calls.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client for the small API surface the
// loader needs: default branch resolution.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client. An empty token yields an
// unauthenticated client, which is sufficient for public repositories.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: gh.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	return &Client{gh: gh.NewClient(tc)}
}

// ResolveDefaultBranch returns the repository's default branch name.
func (c *Client) ResolveDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}
	if r.GetDefaultBranch() == "" {
		return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
	}
	return r.GetDefaultBranch(), nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docent/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docent/internal/chunkers/semantic"
	"github.com/custodia-labs/docent/internal/chunkers/window"
	"github.com/custodia-labs/docent/internal/connectors/github"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/services"
)

var (
	indexChunker    string
	indexWindowSize int
	indexWindowStep int
)

var indexCmd = &cobra.Command{
	Use:   "index <owner>/<repo>",
	Short: "Download and index a repository's documentation",
	Long: `Downloads the repository as a zip archive, extracts its markdown files,
chunks them and builds the search indexes. Documents and chunks are
persisted so later commands can rebuild the indexes without refetching.

Chunkers:
  window    sliding byte windows (default, no LLM required)
  semantic  LLM-chosen topical sections (requires an OpenAI API key)`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexChunker, "chunker", "", "chunking strategy: window or semantic")
	indexCmd.Flags().IntVar(&indexWindowSize, "window-size", 0, "window size in characters (window chunker)")
	indexCmd.Flags().IntVar(&indexWindowStep, "window-step", 0, "window step in characters (window chunker)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	owner, repo, err := splitRepoArg(args[0])
	if err != nil {
		return err
	}

	if err := ensureServices(); err != nil {
		return err
	}

	chunker, err := newChunker()
	if err != nil {
		return err
	}

	loader := newLoader(cmd.Context())
	svc := services.NewIndexService(loader, chunker, docStore, searchEngine, vectorIndex, embeddingService)

	stats, err := svc.BuildIndex(cmd.Context(), owner, repo)
	if err != nil {
		return fmt.Errorf("index %s/%s: %w", owner, repo, err)
	}

	cmd.Printf("Indexed %s/%s: %d documents, %d chunks", owner, repo, stats.Documents, stats.Chunks)
	if stats.Embedded > 0 {
		cmd.Printf(", %d embedded", stats.Embedded)
	}
	cmd.Printf(" (%s)\n", stats.Elapsed.Round(time.Millisecond))
	return nil
}

// newChunker builds the configured chunking strategy. Flags win over
// config file values.
func newChunker() (driven.Chunker, error) {
	name := indexChunker
	if name == "" {
		name = configStore.GetString(configfile.KeyChunker)
	}

	switch name {
	case "", "window":
		size := indexWindowSize
		if size == 0 {
			size = configStore.GetInt(configfile.KeyWindowSize)
		}
		if size == 0 {
			size = window.DefaultSize
		}
		step := indexWindowStep
		if step == 0 {
			step = configStore.GetInt(configfile.KeyWindowStep)
		}
		if step == 0 {
			step = window.DefaultStep
		}
		return window.New(size, step)

	case "semantic":
		if llmService == nil {
			return nil, errors.New("semantic chunking requires an OpenAI API key, run 'docent settings set-key'")
		}
		return semantic.New(llmService)

	default:
		return nil, fmt.Errorf("unknown chunker %q (expected window or semantic)", name)
	}
}

// newLoader builds the repository loader, attaching an API client when
// a GitHub token is configured so the default branch is resolved
// instead of probed.
func newLoader(ctx context.Context) driven.Loader {
	token := configStore.GetString(configfile.KeyGitHubToken)
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return github.NewLoader()
	}
	return github.NewLoader(github.WithAPIClient(github.NewClient(ctx, token)))
}

// splitRepoArg parses "owner/repo".
func splitRepoArg(arg string) (string, string, error) {
	owner, repo, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("expected <owner>/<repo>, got %q", arg)
	}
	return owner, repo, nil
}

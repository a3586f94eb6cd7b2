package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/services"
)

var (
	searchK    int
	searchMode string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed documentation",
	Long: `Searches the index built by 'docent index'.

Modes:
  text    lexical full-text search (default)
  vector  embedding similarity search (requires an OpenAI API key)
  hybrid  both, concatenated with duplicates removed`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "k", "k", services.DefaultTopK, "maximum number of results per index")
	searchCmd.Flags().StringVar(&searchMode, "mode", "text", "search mode: text, vector or hybrid")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := ensureServices(); err != nil {
		return err
	}

	idx := services.NewIndexService(nil, nil, docStore, searchEngine, vectorIndex, embeddingService)
	if err := refitFromStore(cmd.Context(), idx); err != nil {
		return err
	}

	var results []domain.SearchResult
	var err error
	switch searchMode {
	case "text":
		results, err = searchService.TextSearch(cmd.Context(), query, searchK)
	case "vector":
		results, err = searchService.VectorSearch(cmd.Context(), query, searchK)
	case "hybrid":
		results, err = searchService.HybridSearch(cmd.Context(), query, searchK)
	default:
		return fmt.Errorf("unknown search mode %q (expected text, vector or hybrid)", searchMode)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchList(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range results {
		r := &results[i]
		title := r.Chunk.Title
		if title == "" {
			title = r.Chunk.Filename
		}
		cmd.Printf("[%d] %s (%.4f)\n", i+1, title, r.Score)
		cmd.Printf("    %s\n", r.Chunk.Filename)
		cmd.Printf("    %s\n\n", snippet(r.Chunk.Text()))
	}
	return nil
}

// snippet trims chunk text to a single display line.
func snippet(s string) string {
	const max = 160
	line := s
	for i := 0; i < len(line); i++ {
		if line[i] == '\n' {
			line = line[:i]
			break
		}
	}
	if len(line) > max {
		line = line[:max] + "..."
	}
	return line
}

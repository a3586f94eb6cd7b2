package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	agentopenai "github.com/custodia-labs/docent/internal/adapters/driven/agent/openai"
	configfile "github.com/custodia-labs/docent/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/services"
)

var askHybrid bool

var askCmd = &cobra.Command{
	Use:   "ask <owner>/<repo>",
	Short: "Ask questions about a repository's documentation",
	Long: `Starts an interactive question-and-answer session. The assistant
searches the index before answering and cites the files it used.
Every exchange is logged for later evaluation with 'docent evaluate'.

Type 'exit' or 'quit' (or press Ctrl-D) to end the session.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askHybrid, "hybrid", false, "give the assistant hybrid search instead of text search")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	owner, repo, err := splitRepoArg(args[0])
	if err != nil {
		return err
	}

	if err := ensureServices(); err != nil {
		return err
	}
	key := apiKey()
	if key == "" {
		return errors.New("the assistant requires an OpenAI API key, run 'docent settings set-key'")
	}

	idx := services.NewIndexService(nil, nil, docStore, searchEngine, vectorIndex, embeddingService)
	if err := refitFromStore(cmd.Context(), idx); err != nil {
		return err
	}

	agent, err := agentopenai.New(agentopenai.Config{
		APIKey: key,
		Model:  configStore.GetString(configfile.KeyOpenAIModel),
		Owner:  owner,
		Repo:   repo,
	}, searchTool())
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}

	assistant := services.NewAssistantService(agent, logStore)
	session := assistant.NewSession(owner, repo)

	cmd.Printf("Asking about %s/%s. Type 'exit' to quit.\n\n", owner, repo)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "exit" || prompt == "quit" {
			return nil
		}

		answer, err := assistant.Ask(cmd.Context(), session, prompt)
		if err != nil {
			cmd.Printf("Error: %v\n\n", err)
			continue
		}
		cmd.Printf("\n%s\n\n", answer)
	}
}

// searchTool adapts the search service to the agent's tool signature.
func searchTool() func(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if askHybrid {
		return func(ctx context.Context, query string) ([]domain.SearchResult, error) {
			return searchService.HybridSearch(ctx, query, services.DefaultTopK)
		}
	}
	return func(ctx context.Context, query string) ([]domain.SearchResult, error) {
		return searchService.TextSearch(ctx, query, services.DefaultTopK)
	}
}

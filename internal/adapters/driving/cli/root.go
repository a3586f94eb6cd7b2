// Package cli implements the docent command-line interface.
// Commands are registered in init functions; services are wired once
// per process by ensureServices and shared through package-level vars.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docent/internal/adapters/driven/config/file"
	embopenai "github.com/custodia-labs/docent/internal/adapters/driven/embedding/openai"
	bleveidx "github.com/custodia-labs/docent/internal/adapters/driven/index/bleve"
	"github.com/custodia-labs/docent/internal/adapters/driven/index/memvec"
	llmopenai "github.com/custodia-labs/docent/internal/adapters/driven/llm/openai"
	logfile "github.com/custodia-labs/docent/internal/adapters/driven/logstore/file"
	"github.com/custodia-labs/docent/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/services"
	"github.com/custodia-labs/docent/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Shared services, wired by ensureServices.
var (
	configStore      driven.ConfigStore
	docStore         driven.DocumentStore
	searchEngine     driven.SearchEngine
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	logStore         *logfile.Store

	searchService *services.SearchService
)

var rootCmd = &cobra.Command{
	Use:   "docent",
	Short: "Ask questions about a GitHub repository's documentation",
	Long: `Docent indexes the markdown documentation of a GitHub repository and
answers questions about it with a search-backed assistant.

Typical flow:
  docent index <owner>/<repo>     # download and index the docs
  docent search <owner>/<repo> q  # search the index directly
  docent ask <owner>/<repo>       # interactive Q&A session
  docent evaluate                 # judge logged interactions`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ensureServices wires the shared services on first use. The OpenAI
// services stay nil without an API key; commands that need them report
// that instead of failing here, so lexical-only flows keep working.
func ensureServices() error {
	if searchService != nil {
		return nil
	}

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = store

	db, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	docStore = db

	engine, err := bleveidx.NewEngine()
	if err != nil {
		return fmt.Errorf("create search engine: %w", err)
	}
	searchEngine = engine
	vectorIndex = memvec.NewIndex()
	logStore = logfile.NewStore("")

	if key := apiKey(); key != "" {
		llm, err := llmopenai.NewLLMService(llmopenai.LLMConfig{
			APIKey: key,
			Model:  configStore.GetString(configfile.KeyOpenAIModel),
		})
		if err != nil {
			return fmt.Errorf("create LLM service: %w", err)
		}
		llmService = llm

		emb, err := embopenai.NewEmbeddingService(embopenai.Config{
			APIKey: key,
			Model:  configStore.GetString(configfile.KeyEmbeddingModel),
		})
		if err != nil {
			return fmt.Errorf("create embedding service: %w", err)
		}
		embeddingService = emb
	} else {
		logger.Info("No OpenAI API key configured, vector search and assistant disabled")
	}

	searchService = services.NewSearchService(searchEngine, vectorIndex, embeddingService)
	return nil
}

// apiKey resolves the OpenAI API key: config file first, then environment.
func apiKey() string {
	if key := configStore.GetString(configfile.KeyOpenAIAPIKey); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// refitFromStore rebuilds the in-memory indexes from persisted chunks.
// The bleve and vector indexes do not survive process restarts, so
// commands that search must refit before serving queries.
func refitFromStore(ctx context.Context, idx *services.IndexService) error {
	docs, err := docStore.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no indexed documents found, run 'docent index' first")
	}

	var all []domain.Chunk
	for i := range docs {
		docChunks, err := docStore.GetChunks(ctx, docs[i].ID)
		if err != nil {
			return fmt.Errorf("load chunks for %s: %w", docs[i].Filename, err)
		}
		all = append(all, docChunks...)
	}
	logger.Debug("Refitting indexes from %d documents, %d chunks", len(docs), len(all))
	return idx.Fit(ctx, all)
}

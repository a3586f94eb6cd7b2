package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/docent/internal/adapters/driven/config/file"
	judgeopenai "github.com/custodia-labs/docent/internal/adapters/driven/judge/openai"
	llmopenai "github.com/custodia-labs/docent/internal/adapters/driven/llm/openai"
	logfile "github.com/custodia-labs/docent/internal/adapters/driven/logstore/file"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/services"
)

var (
	evalDir         string
	evalOutput      string
	evalConcurrency int
	evalRateLimit   float64
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Judge logged interactions with an LLM",
	Long: `Loads AI-generated interaction logs, has an LLM judge score each
transcript against a quality checklist, and writes the verdicts to a
CSV file. Records whose judge call fails are reported and excluded.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalDir, "dir", "", `directory of transcripts to evaluate (default "evaluation_data")`)
	evaluateCmd.Flags().StringVarP(&evalOutput, "output", "o", "evaluation_results.csv", "output CSV path")
	evaluateCmd.Flags().IntVar(&evalConcurrency, "concurrency", services.DefaultEvalConcurrency, "parallel judge calls")
	evaluateCmd.Flags().Float64Var(&evalRateLimit, "rate-limit", 0, "max judge calls per second (0 = unlimited)")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	key := apiKey()
	if key == "" {
		return errors.New("evaluation requires an OpenAI API key, run 'docent settings set-key'")
	}

	store := logfile.NewEvalStore(evalDir)

	model := configStore.GetString(configfile.KeyOpenAIModel)
	factory := func() (driven.Judge, error) {
		llm, err := llmopenai.NewLLMService(llmopenai.LLMConfig{APIKey: key, Model: model})
		if err != nil {
			return nil, err
		}
		return judgeopenai.New(llm)
	}

	svc := services.NewEvaluationService(store, factory,
		services.WithConcurrency(evalConcurrency),
		services.WithRateLimit(evalRateLimit),
	)

	records, err := svc.LoadEvalSet(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no AI-generated logs to evaluate")
	}

	rows, err := svc.Run(cmd.Context(), records)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no records were judged successfully")
	}

	if err := svc.WriteCSV(rows, evalOutput); err != nil {
		return err
	}
	cmd.Printf("Wrote %d results to %s\n\n", len(rows), evalOutput)

	printPassRates(cmd, rows)
	return nil
}

func printPassRates(cmd *cobra.Command, rows []domain.ResultsRow) {
	rates := domain.PassRates(rows)
	names := make([]string, 0, len(rates))
	for name := range rates {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Println("Pass rates:")
	for _, name := range names {
		cmd.Printf("  %-22s %5.1f%%\n", name, rates[name]*100)
	}
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/custodia-labs/docent/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the OpenAI credentials, models, chunking defaults
and GitHub token used by the other commands.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the OpenAI API key",
	Long:  `Prompts for the OpenAI API key without echoing it and stores it in the config file.`,
	RunE:  runSettingsSetKey,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a configuration value by key, for example:

  docent settings set openai.model gpt-4o-mini
  docent settings set openai.embedding_model text-embedding-3-small
  docent settings set index.chunker semantic
  docent settings set index.window_size 2000
  docent settings set github.token ghp_xxx`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[OpenAI]")
	if key := configStore.GetString(configfile.KeyOpenAIAPIKey); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else if os.Getenv("OPENAI_API_KEY") != "" {
		cmd.Println("  API Key: (from OPENAI_API_KEY)")
	} else {
		cmd.Println("  API Key: (not set)")
	}
	cmd.Printf("  Model: %s\n", orDefault(configStore.GetString(configfile.KeyOpenAIModel), "gpt-4o-mini"))
	cmd.Printf("  Embedding Model: %s\n", orDefault(configStore.GetString(configfile.KeyEmbeddingModel), "text-embedding-3-small"))
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Chunker: %s\n", orDefault(configStore.GetString(configfile.KeyChunker), "window"))
	if size := configStore.GetInt(configfile.KeyWindowSize); size > 0 {
		cmd.Printf("  Window Size: %d\n", size)
	}
	if step := configStore.GetInt(configfile.KeyWindowStep); step > 0 {
		cmd.Printf("  Window Step: %d\n", step)
	}
	cmd.Println()

	cmd.Println("[GitHub]")
	if token := configStore.GetString(configfile.KeyGitHubToken); token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(token))
	} else if os.Getenv("GITHUB_TOKEN") != "" {
		cmd.Println("  Token: (from GITHUB_TOKEN)")
	} else {
		cmd.Println("  Token: (not set, public archives only)")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	cmd.Print("Enter OpenAI API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return fmt.Errorf("no key entered")
	}

	if err := configStore.Set(configfile.KeyOpenAIAPIKey, key); err != nil {
		return fmt.Errorf("save API key: %w", err)
	}
	cmd.Printf("API key saved (%s)\n", maskAPIKey(key))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	cmd.Println(configStore.Path())
	return nil
}

// Helper functions.

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback + " (default)"
	}
	return value
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docent/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docent/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the documentation
search index as a tool for external AI assistants.

By default, the server communicates over stdio using JSON-RPC. Use
--port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  docent mcp serve

  # HTTP mode
  docent mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := ensureServices(); err != nil {
		return err
	}
	idx := services.NewIndexService(nil, nil, docStore, searchEngine, vectorIndex, embeddingService)
	if err := refitFromStore(cmd.Context(), idx); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Search: searchService})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

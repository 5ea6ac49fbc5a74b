package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gconnect/internal/adapters/driving/mcp"
	"github.com/custodia-labs/gconnect/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Tools: calendar_next, calendar_list, gmail_unread, drive_recent,
drive_search, drive_file_content.

Examples:
  # Stdio mode (default)
  gconnect mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  gconnect mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "gconnect": {
        "command": "/path/to/gconnect",
        "args": ["mcp", "serve"]
      }
    }
  }`,
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

	server, err := mcp.NewServer(&mcp.Ports{
		Connector:   connectorService,
		Credentials: credentialService,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if watchCredentials != nil {
		if err := watchCredentials(ctx); err != nil {
			logger.Warn("credential changes will not be picked up: %v", err)
		}
	}

	if port > 0 {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

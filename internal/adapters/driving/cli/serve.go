package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gconnect/internal/adapters/driving/rest"
	"github.com/custodia-labs/gconnect/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP facade",
	Long: `Start the read-only HTTP API on server.host:server.port.

Routes:
  GET /health
  GET /calendar/next?max_results=10
  GET /calendar/list
  GET /gmail/unread?max_results=10
  GET /drive/recent?max_results=20
  GET /drive/search?name=<text>&max_results=10
  GET /drive/file/<file_id>

Examples:
  gconnect serve
  gconnect serve --port 9100`,
	RunE: runServe,
}

// Flags for serve.
var (
	serveHost string
	servePort int
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if connectorService == nil || settingsService == nil {
		return fmt.Errorf("serve: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	server := settings.Server
	if serveHost != "" {
		server.Host = serveHost
	}
	if servePort > 0 {
		server.Port = servePort
	}

	ctx := cmd.Context()
	if watchCredentials != nil {
		if err := watchCredentials(ctx); err != nil {
			logger.Warn("credential changes will not be picked up: %v", err)
		}
	}

	cmd.Printf("Serving on http://%s\n", server.Addr())
	return rest.NewServer(connectorService).ListenAndServe(ctx, server.Addr())
}

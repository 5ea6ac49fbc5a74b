// Package cli implements the gconnect command line with cobra.
package cli

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
	"github.com/custodia-labs/gconnect/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// configDir overrides ~/.gconnect.
	configDir string

	// Services holds injected service implementations for CLI commands.
	connectorService  driving.ConnectorService
	credentialService driving.CredentialService
	loginService      driving.CredentialService
	settingsService   driving.SettingsService
	watchCredentials  func(ctx context.Context) error
	closeServices     func() error

	builder Builder
)

// Services holds configuration for CLI commands.
type Services struct {
	Connector   driving.ConnectorService
	Credentials driving.CredentialService
	// Login acquires through the browser regardless of auth.flow.
	Login    driving.CredentialService
	Settings driving.SettingsService
	// Watch keeps cached credentials in sync with the store. Optional.
	Watch func(ctx context.Context) error
	// Close releases resources after the command. Optional.
	Close func() error
}

// Builder constructs services once flags are parsed.
type Builder func(configDir string) (*Services, error)

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	connectorService = s.Connector
	credentialService = s.Credentials
	loginService = s.Login
	settingsService = s.Settings
	watchCredentials = s.Watch
	closeServices = s.Close
}

// SetBuilder registers the function that wires services on first use.
func SetBuilder(b Builder) {
	builder = b
}

// ensureServices runs the builder unless services were injected already.
func ensureServices() error {
	if connectorService != nil || builder == nil {
		return nil
	}
	s, err := builder(configDir)
	if err != nil {
		return err
	}
	SetServices(s)
	return nil
}

var errNotConfigured = errors.New("services not configured")

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gconnect",
	Short: "Read-only local facade over Google Calendar, Gmail and Drive",
	Long: `gconnect exposes your Google Calendar, Gmail and Drive through a small
read-only HTTP API and an MCP server on your own machine.

It keeps one OAuth credential, refreshes it when needed and never writes to
your Google account.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.gconnect)")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if err := godotenv.Load(); err == nil {
			logger.Debug("loaded .env")
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		if closeServices == nil {
			return nil
		}
		return closeServices()
	}
}

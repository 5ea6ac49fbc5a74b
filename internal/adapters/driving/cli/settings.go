package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables override the file: server.port is read from
GCONN_SERVER_PORT, auth.flow from GCONN_AUTH_FLOW, and so on.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in config.toml",
	Long: `Set a value in config.toml.

Values "true" and "false" are stored as booleans and whole numbers as
integers. A comma-separated value is stored as a list.

Examples:
  gconnect settings set server.port 9100
  gconnect settings set calendar.ids primary,family@group.calendar.google.com
  gconnect settings set auth.token_store sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if err := ensureServices(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr())
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Printf("  Flow: %s\n", settings.Auth.Flow.Description())
	if settings.Auth.ClientID != "" {
		cmd.Printf("  Client ID: %s\n", settings.Auth.ClientID)
		cmd.Printf("  Client Secret: %s\n", maskSecret(settings.Auth.ClientSecret))
	} else {
		cmd.Printf("  Client Config: %s\n", settings.Auth.ClientConfigPath)
	}
	cmd.Printf("  Token Store: %s\n", settings.Auth.TokenStore)
	cmd.Printf("  Token Path: %s\n", settings.Auth.TokenPath)
	if settings.Auth.StaticAccessToken != "" {
		cmd.Printf("  Access Token: %s\n", maskSecret(settings.Auth.StaticAccessToken))
	}
	cmd.Printf("  Refresh Buffer: %s\n", settings.Auth.RefreshBuffer)
	cmd.Println()

	cmd.Println("[Calendar]")
	cmd.Printf("  IDs: %s\n", strings.Join(settings.Calendar.IDs, ", "))
	cmd.Printf("  Partial Results: %s\n", yesNo(settings.Calendar.PartialResults))
	cmd.Println()

	cmd.Println("[Gmail]")
	cmd.Printf("  Labels: %s\n", strings.Join(settings.Gmail.Labels, ", "))
	cmd.Printf("  Query: %s\n", settings.Gmail.Query)
	cmd.Println()

	cmd.Println("[Upstream]")
	cmd.Printf("  Timeout: %s\n", settings.Upstream.Timeout)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], parseValue(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if _, err := settingsService.Get(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	cmd.Println(settingsService.Path())
	return nil
}

// parseValue converts a command line value to the type stored in TOML.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if strings.Contains(s, ",") {
		var list []any
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return list
	}
	return s
}

// maskSecret masks a secret for display, showing only first and last 4 chars.
func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

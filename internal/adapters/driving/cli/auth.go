package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Google credential",
	Long: `Sign in to Google, inspect the stored credential or remove it.

The OAuth client is read from credentials.json in the configuration directory,
or from auth.client_id and auth.client_secret.

Examples:
  gconnect auth login
  gconnect auth status
  gconnect auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through the browser and store the credential",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credential",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored credential",
	RunE:  runAuthLogout,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if loginService == nil {
		return fmt.Errorf("auth login: %w", errNotConfigured)
	}

	status, err := loginService.Authorize(cmd.Context())
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	cmd.Println("Signed in.")
	printStatus(cmd, status)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if credentialService == nil {
		return fmt.Errorf("auth status: %w", errNotConfigured)
	}

	status, err := credentialService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}
	printStatus(cmd, status)
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if credentialService == nil {
		return fmt.Errorf("auth logout: %w", errNotConfigured)
	}

	if err := credentialService.Revoke(cmd.Context()); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func printStatus(cmd *cobra.Command, status *domain.CredentialStatus) {
	if status == nil || !status.Present {
		cmd.Println("No credential stored. Run 'gconnect auth login'.")
		return
	}

	cmd.Println("Credential")
	cmd.Println("==========")
	switch {
	case status.Expiry.IsZero():
		cmd.Println("  Expires: never")
	case status.Expired:
		cmd.Printf("  Expires: %s (expired)\n", status.Expiry.Local().Format(time.RFC1123))
	default:
		cmd.Printf("  Expires: %s\n", status.Expiry.Local().Format(time.RFC1123))
	}
	cmd.Printf("  Refreshable: %s\n", yesNo(status.Refreshable))
	if len(status.Scopes) > 0 {
		cmd.Printf("  Scopes:\n    %s\n", strings.Join(status.Scopes, "\n    "))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

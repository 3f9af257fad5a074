package cmd

import (
	"github.com/spf13/cobra"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication for lumen",
	Long: `Manage authentication for lumen CLI commands.

The auth command group provides subcommands to sign in with an identity
assertion, check the current authentication status, and sign out.

Examples:
  lumen auth login --assertion <token>  # Sign in with an identity assertion
  lumen auth login                      # Read the assertion from stdin
  lumen auth status                     # Show authentication status
  lumen auth logout                     # Sign out and clear the credential`,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

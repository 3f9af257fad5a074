package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored credential",
	Long: `Sign out from the Lumen backend.

The stored credential is removed from the credential store. Signing out when
not signed in is not an error.`,
	RunE: runAuthLogout,
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := buildApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	a.auth.SignOut()
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	return nil
}

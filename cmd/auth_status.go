package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"lumen/internal/auth"
)

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication status.

This command displays whether a usable credential is held, which identity it
belongs to, and when it expires.`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := buildApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	st := a.auth.StateSnapshot()

	switch st.State {
	case auth.StateAuthenticated:
		cred := a.auth.CurrentCredential()
		if cred == nil {
			// The restored credential expired between snapshot and read.
			fmt.Fprintf(out, "%s credential expired, sign in again\n", text.FgYellow.Sprint("✗"))
			return nil
		}
		fmt.Fprintf(out, "%s signed in as %s\n", text.FgGreen.Sprint("✓"), cred.User.Email)
		fmt.Fprintf(out, "  expires: %s (%s)\n",
			cred.ExpiresAt.Format(time.RFC3339),
			formatRemaining(time.Until(cred.ExpiresAt)))
	case auth.StateFailed:
		fmt.Fprintf(out, "%s last sign-in failed: %s\n", text.FgRed.Sprint("✗"), st.Reason)
	default:
		fmt.Fprintf(out, "%s not signed in\n", text.FgYellow.Sprint("✗"))
	}
	return nil
}

// formatRemaining renders a time-until-expiry in a compact human form.
func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds remaining", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm remaining", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%02dm remaining", int(d.Hours()), int(d.Minutes())%60)
}

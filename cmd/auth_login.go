package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// Login-specific flags
var (
	loginAssertion string
)

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Lumen backend",
	Long: `Sign in to the Lumen backend by exchanging an external identity
assertion for an access token.

The assertion is the token produced by your identity provider. Pass it with
--assertion, set LUMEN_ASSERTION, or pipe it on stdin.

Examples:
  lumen auth login --assertion <token>
  LUMEN_ASSERTION=<token> lumen auth login
  cat assertion.txt | lumen auth login`,
	RunE: runAuthLogin,
}

func init() {
	authLoginCmd.Flags().StringVar(&loginAssertion, "assertion", "", "Identity assertion to exchange for an access token")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	assertion := loginAssertion
	if assertion == "" {
		assertion = os.Getenv("LUMEN_ASSERTION")
	}
	if assertion == "" {
		assertion = readAssertionFromStdin()
	}
	if assertion == "" {
		return fmt.Errorf("no identity assertion provided (use --assertion, LUMEN_ASSERTION, or stdin)")
	}

	a, err := buildApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Signing in..."
	s.Start()
	err = a.auth.SignIn(ctx, assertion)
	s.Stop()
	if err != nil {
		return err
	}

	st := a.auth.StateSnapshot()
	if st.User != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", st.User.Email)
	}
	return nil
}

// readAssertionFromStdin reads a single-line assertion when stdin is piped.
func readAssertionFromStdin() string {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return ""
	}
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// newHealthCmd creates the Cobra command for probing backend liveness.
func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the Lumen backend is reachable",
		Long: `Check backend liveness.

This performs an unauthenticated request against the health endpoint and
reports the result. No credential is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Checking backend..."
			s.Start()
			status, err := a.api.Health(cmd.Context())
			s.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s backend is %s", text.FgGreen.Sprint("✓"), status.Status)
			if status.Version != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (version %s)", status.Version)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// newVersionCmd reports the build version injected by main via SetVersion,
// together with the platform the binary was built for.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the lumen build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lumen %s (%s/%s)\n",
				rootCmd.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}

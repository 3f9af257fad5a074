package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

// Exit codes for CLI commands. These follow common conventions so scripts
// can branch on the outcome.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates authentication is required but not available.
	ExitCodeAuthRequired = 2
	// ExitCodeNoConnection indicates the network was unreachable.
	ExitCodeNoConnection = 3
)

// Global flags
var (
	flagConfigPath string
	flagDebug      bool
	flagPlainLogs  bool
)

// rootCmd represents the base command for the lumen application.
var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Client for the Lumen enhancement service",
	Long: `lumen talks to the Lumen backend: it signs you in, uploads captured
photo and audio payloads as enhancements, and fetches the transcripts and
insights the service derives from them.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if flagDebug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr, flagPlainLogs)
	},
}

// SetVersion sets the version for the root command.
// Called from the main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "lumen version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error kinds onto semantic exit codes.
func getExitCode(err error) int {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case apierror.KindUnauthorized, apierror.KindInvalidAssertion:
			return ExitCodeAuthRequired
		case apierror.KindNoConnection:
			return ExitCodeNoConnection
		}
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to the config file (default ~/.config/lumen/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagPlainLogs, "plain-logs", false, "Disable colorized log output")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(enhancementCmd)
	rootCmd.AddCommand(newVersionCmd())
}

// Package cli implements the credchain command-line interface using
// Cobra. It exposes chain resolution for use as an external credential
// process, plus source listing and keyring management.
package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/majorcontext/credchain/internal/log"
)

var (
	verbose bool
	jsonOut bool
	profile string
)

var rootCmd = &cobra.Command{
	Use:   "credchain",
	Short: "Resolve credentials from an ordered chain of sources",
	Long: `credchain walks an ordered chain of credential sources and returns
the first credentials found. The default chain tries the EC2 instance
profile, the application settings file, and the process environment, in
that order; configure a different order in ~/.credchain/config.yaml or
with CREDCHAIN_PROVIDERS.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Resolve profile: --profile flag > CREDCHAIN_PROFILE env var.
		// Sources read CREDCHAIN_PROFILE, so push the flag down.
		if profile != "" {
			os.Setenv("CREDCHAIN_PROFILE", profile)
		}

		log.Init(log.Options{
			Verbose:     verbose,
			JSONFormat:  jsonOut,
			Interactive: isatty.IsTerminal(os.Stderr.Fd()) && !verbose,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON log output")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "credential profile (overrides CREDCHAIN_PROFILE)")
}

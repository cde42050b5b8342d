// Package cmd implements the talent-cli commands.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "talent-cli",
	Short: "Talent Finder command-line tools",
	Long: `talent-cli runs the offline jobs of Talent Finder and queries the
services the web application depends on.

Available commands:
  gitstats         Build the repository statistics snapshot
  health           Run the dependency checks
  openalex stats   Compute OpenAlex statistics for institutions
  github counts    Count open issues and pull requests

Use "talent-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logging.New()
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment after the .env file has been applied.
func loadConfig() *config.Config {
	return config.Load()
}

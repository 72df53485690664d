package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "warroom",
	Short: "V32 Warroom - US equity strength scanner",
	Long: `V32 Warroom Unified CLI

Scores US equities from daily price/volume history, classifies the
S&P 500 into a market regime, and gates the watchlist pools on the
composite strength score.

Usage:
  go run ./cmd/warroom [command]

Examples:
  go run ./cmd/warroom api
  go run ./cmd/warroom scan conservative
  go run ./cmd/warroom market
  go run ./cmd/warroom holdings report`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Package cmd provides the CLI commands for orderlakeops.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/cmd/pipeline"
	"orderlake.io/orderlake/helpers/slog"
)

var rootCmd = &cobra.Command{
	Use:   "orderlakeops",
	Short: "Order lake operational automation tool",
	Long: `orderlakeops provides standardized, safe automation for operating
the order lake pipeline: seeding order files, uploading them into the
data bucket, driving the catalog crawler, querying the filtered table,
and inspecting filter Lambda logs.

All commands support --dry-run by default and require explicit
confirmation before making changes (use --yes to skip).

Safety Features:
  • Dry-run mode shows planned actions without execution
  • Interactive confirmation before writes
  • A local run ledger records what was executed and when`,
	Example: `  # Generate a file of fake orders
  orderlakeops pipeline generate --count=500 --out=orders.csv

  # Upload it into the raw namespace (triggers the filter Lambda)
  orderlakeops pipeline upload --config=lake.json --file=orders.csv

  # See what the upload would do first
  orderlakeops pipeline upload --config=lake.json --file=orders.csv --dry-run

  # Query the filtered table
  orderlakeops pipeline query --config=lake.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			slog.SetUpDebugLogger()
		}
	},
}

// Root exports the root command for doc generation and testing.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	slog.SetUpDefaultCLILogger()
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError formats and prints an error in a user-friendly way.
func printError(err error) {
	fmt.Println()
	fmt.Println("❌ Error:", rootCause(err))
	fmt.Println()
	fmt.Println("Stack trace:")
	fmt.Println(err.Error())
}

// rootCause extracts the first line of an oops error chain, which carries the
// "outer: inner: cause" context without the stack trace.
func rootCause(err error) string {
	if err == nil {
		return ""
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

func defaultLedgerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".orderlakeops", "runs.db")
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().Bool("dry-run", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().Bool("yes", false, "Skip confirmation prompts (use with caution)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("ledger", defaultLedgerPath(), "Path of the local run ledger")

	rootCmd.AddCommand(pipeline.Command())
}

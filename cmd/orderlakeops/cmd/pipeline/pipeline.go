// Package pipeline provides order lake pipeline CLI commands for orderlakeops.
package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
)

// Command returns the pipeline parent command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Order lake pipeline operations",
		Long: `Commands for operating the order lake pipeline.

Available operations:
  • generate     - Generate a CSV of fake orders
  • upload       - Upload an orders CSV into the raw namespace
  • crawler-run  - Run the Glue crawler over the processed namespace
  • query        - Run an Athena query against the filtered table
  • logs         - Show the latest filter Lambda invocation logs
  • runs         - Show the local history of executed operations`,
		Example: `  # Seed and upload a batch of orders
  orderlakeops pipeline generate --count=500 --out=orders.csv
  orderlakeops pipeline upload --config=lake.json --file=orders.csv

  # Refresh the catalog and query recent orders
  orderlakeops pipeline crawler-run --config=lake.json
  orderlakeops pipeline query --config=lake.json

  # Dry run before uploading
  orderlakeops pipeline upload --config=lake.json --file=orders.csv --dry-run`,
	}

	// Register subcommands
	cmd.AddCommand(generateCmd())
	cmd.AddCommand(uploadCmd())
	cmd.AddCommand(crawlerRunCmd())
	cmd.AddCommand(queryCmd())
	cmd.AddCommand(logsCmd())
	cmd.AddCommand(runsCmd())

	return cmd
}

// runnerOptions collects the global flags every pipeline command passes to
// the runner.
func runnerOptions(cmd *cobra.Command) runner.Options {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipConfirm, _ := cmd.Flags().GetBool("yes")
	ledgerPath, _ := cmd.Flags().GetString("ledger")

	return runner.Options{
		DryRun:      dryRun,
		SkipConfirm: skipConfirm,
		LedgerPath:  ledgerPath,
	}
}

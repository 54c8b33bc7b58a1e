package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
	"orderlake.io/orderlake/orderlakeops/pipeline"
	"orderlake.io/orderlake/pipelineconfig"
)

func queryCmd() *cobra.Command {
	var (
		configPath string
		sql        string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run an Athena query against the filtered table",
		Long: `Run a SQL query against the filtered orders table through Athena
and print the result set.

Without --sql the command runs the default recent-orders query against
the configured table.`,
		Example: `  # Recent filtered orders
  orderlakeops pipeline query --config=lake.json

  # Custom SQL
  orderlakeops pipeline query --config=lake.json --sql='SELECT status, COUNT(*) FROM filtered_orders GROUP BY status'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}

			op := pipeline.NewQueryOp(config.Region, config.Database, config.Table, sql, config.ResultsLocation())
			return runner.Run(cmd.Context(), op, runnerOptions(cmd))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Pipeline config file (required)")
	cmd.Flags().StringVar(&sql, "sql", "", "SQL to run (default: recent orders from the configured table)")

	cmd.MarkFlagRequired("config")

	return cmd
}

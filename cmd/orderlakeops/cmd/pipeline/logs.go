package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
	"orderlake.io/orderlake/orderlakeops/pipeline"
	"orderlake.io/orderlake/pipelineconfig"
)

func logsCmd() *cobra.Command {
	var (
		configPath string
		limit      int64
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the latest filter Lambda invocation logs",
		Long: `Fetch the most recent filter Lambda log events from CloudWatch
Logs, oldest first.

Reads are throttled below the CloudWatch per-account quota, so large
limits take a few seconds.`,
		Example: `  # Last 50 events
  orderlakeops pipeline logs --config=lake.json

  # More history
  orderlakeops pipeline logs --config=lake.json --limit=500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}

			op := pipeline.NewLogsOp(config.Region, config.LogGroup, limit)
			return runner.Run(cmd.Context(), op, runnerOptions(cmd))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Pipeline config file (required)")
	cmd.Flags().Int64Var(&limit, "limit", 50, "Maximum number of events to fetch")

	cmd.MarkFlagRequired("config")

	return cmd
}

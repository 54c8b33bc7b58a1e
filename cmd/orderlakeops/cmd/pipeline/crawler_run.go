package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
	"orderlake.io/orderlake/orderlakeops/pipeline"
	"orderlake.io/orderlake/pipelineconfig"
)

func crawlerRunCmd() *cobra.Command {
	var (
		configPath string
		noWait     bool
	)

	cmd := &cobra.Command{
		Use:   "crawler-run",
		Short: "Run the Glue crawler over the processed namespace",
		Long: `Run the Glue crawler over the processed namespace and wait for it
to finish, so queries see newly filtered objects.

An already-running crawler is treated as success; the command just
waits for the in-flight crawl.`,
		Example: `  # Run the crawler and wait for it to finish
  orderlakeops pipeline crawler-run --config=lake.json

  # Fire and forget
  orderlakeops pipeline crawler-run --config=lake.json --no-wait`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}

			op := pipeline.NewCrawlerRunOp(config.Region, config.Crawler, !noWait)
			return runner.Run(cmd.Context(), op, runnerOptions(cmd))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Pipeline config file (required)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Start the crawler without waiting for completion")

	cmd.MarkFlagRequired("config")

	return cmd
}

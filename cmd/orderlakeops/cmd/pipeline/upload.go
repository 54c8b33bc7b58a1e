package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
	"orderlake.io/orderlake/orderlakeops/pipeline"
	"orderlake.io/orderlake/pipelineconfig"
)

func uploadCmd() *cobra.Command {
	var (
		configPath string
		filePath   string
		key        string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload an orders CSV into the raw namespace",
		Long: `Upload a local orders CSV into the data bucket's raw namespace.

The file is decoded locally first with the same rules the filter Lambda
applies, so malformed files are rejected before they reach the bucket.
Landing the object under raw/ fires the bucket notification and the
filter Lambda writes the processed counterpart.`,
		Example: `  # Upload under raw/<file name>
  orderlakeops pipeline upload --config=lake.json --file=orders.csv

  # Upload under an explicit key
  orderlakeops pipeline upload --config=lake.json --file=orders.csv --key=march-orders.csv

  # See the plan without uploading
  orderlakeops pipeline upload --config=lake.json --file=orders.csv --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}

			op := pipeline.NewUploadOp(config.Region, config.DataBucket, filePath, key)
			return runner.Run(cmd.Context(), op, runnerOptions(cmd))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Pipeline config file (required)")
	cmd.Flags().StringVar(&filePath, "file", "", "Orders CSV to upload (required)")
	cmd.Flags().StringVar(&key, "key", "", "Destination object key (default: raw/<file name>)")

	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("file")

	return cmd
}

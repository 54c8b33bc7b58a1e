package pipeline

import (
	"github.com/spf13/cobra"

	"orderlake.io/orderlake/cmd/orderlakeops/internal/runner"
	"orderlake.io/orderlake/orderlakeops/pipeline"
)

func generateCmd() *cobra.Command {
	var (
		count   int
		seed    int64
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a CSV of fake orders",
		Long: `Generate a CSV of fake orders for seeding the pipeline.

Orders carry sequential ids, random customers and amounts, a random
status, and order dates spread over the trailing 90 days, so a batch
exercises both sides of the retention filter.`,
		Example: `  # Generate 500 orders
  orderlakeops pipeline generate --count=500 --out=orders.csv

  # Reproducible output for a fixed seed
  orderlakeops pipeline generate --count=500 --seed=7 --out=orders.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pipeline.NewGenerateOp(count, seed, outPath)
			return runner.Run(cmd.Context(), op, runnerOptions(cmd))
		},
	}

	cmd.Flags().IntVar(&count, "count", 100, "Number of orders to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = non-reproducible)")
	cmd.Flags().StringVar(&outPath, "out", "orders.csv", "Output file path")

	return cmd
}

package pipeline

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"orderlake.io/orderlake/orderlakeops/runledger"
)

func runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show the local history of executed operations",
		Long: `Show the local run ledger: which operations were executed from this
machine, when, and whether they succeeded.

Dry runs are not recorded.`,
		Example: `  # Last 20 runs
  orderlakeops pipeline runs

  # More history
  orderlakeops pipeline runs --limit=100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledgerPath, _ := cmd.Flags().GetString("ledger")

			ledger, err := runledger.Open(ledgerPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			records, err := ledger.Latest(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No recorded runs yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tOPERATION\tDURATION\tOUTCOME\tERROR")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					record.StartedAt.Format(time.RFC3339),
					record.Operation,
					(time.Duration(record.DurationMs) * time.Millisecond).String(),
					record.Outcome,
					record.Error,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

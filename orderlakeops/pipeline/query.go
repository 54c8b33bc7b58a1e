package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go/service/athena"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/orderquery"
)

// defaultQueryLimit caps the default query so interactive runs stay readable.
const defaultQueryLimit = 20

// QueryResult is the typed result returned by QueryOp.Execute().
type QueryResult struct {
	// ExecutionId is the Athena query execution id.
	ExecutionId string `json:"executionId"`

	// Rows is the number of data rows returned.
	Rows int `json:"rows"`
}

// QueryOp runs a SQL query against the filtered orders table through Athena
// and prints the result set as a table.
type QueryOp struct {
	// Input fields
	Region          string
	Database        string
	Table           string
	SQL             string
	ResultsLocation string

	// Internal state (populated during Validate)
	runner *orderquery.Runner
	sql    string
}

// NewQueryOp creates a new query operation. sql may be empty to run the
// default recent-orders query against table.
func NewQueryOp(region, database, table, sql, resultsLocation string) *QueryOp {
	return &QueryOp{
		Region:          region,
		Database:        database,
		Table:           table,
		SQL:             sql,
		ResultsLocation: resultsLocation,
	}
}

// Name implements orderlakeops.Operation.
func (o *QueryOp) Name() string {
	return "query"
}

// Description implements orderlakeops.Operation.
func (o *QueryOp) Description() string {
	return "Run an Athena query against the filtered orders table"
}

// Validate implements orderlakeops.Operation.
func (o *QueryOp) Validate(ctx context.Context) error {
	if o.Region == "" {
		return oops.Errorf("--region is required")
	}
	if o.Database == "" {
		return oops.Errorf("--database is required")
	}
	if o.ResultsLocation == "" {
		return oops.Errorf("a results location is required")
	}
	if o.SQL == "" && o.Table == "" {
		return oops.Errorf("--table is required when no --sql is given")
	}

	sess, err := newSession(o.Region)
	if err != nil {
		return oops.Wrapf(err, "failed to create AWS session")
	}
	o.runner = orderquery.New(athena.New(sess))

	o.sql = o.SQL
	if o.sql == "" {
		o.sql = defaultQuery(o.Table)
	}

	return nil
}

// Plan implements orderlakeops.Operation.
func (o *QueryOp) Plan(ctx context.Context) error {
	fmt.Println()
	fmt.Println("📋 Query Plan")
	fmt.Println("───────────────────────────────────────")
	fmt.Printf("   Region:    %s\n", o.Region)
	fmt.Printf("   Database:  %s\n", o.Database)
	fmt.Printf("   Results:   %s\n", o.ResultsLocation)
	fmt.Printf("   SQL:       %s\n", o.sql)
	fmt.Println()
	return nil
}

// Execute implements orderlakeops.Operation.
// Returns *QueryResult.
func (o *QueryOp) Execute(ctx context.Context) (any, error) {
	if o.runner == nil {
		return nil, oops.Errorf("Validate() must be called before Execute()")
	}

	fmt.Println("🚀 Running query...")

	resultSet, err := o.runner.Run(ctx, o.sql, o.Database, o.ResultsLocation)
	if err != nil {
		return nil, oops.Wrapf(err, "query failed")
	}

	fmt.Println()
	printResultSet(resultSet)
	fmt.Println()
	fmt.Printf("✅ %d row(s), execution %s\n", len(resultSet.Rows), resultSet.ExecutionId)

	slog.Infow(ctx, "athena query completed",
		"region", o.Region,
		"database", o.Database,
		"executionId", resultSet.ExecutionId,
		"rows", len(resultSet.Rows),
	)

	return &QueryResult{
		ExecutionId: resultSet.ExecutionId,
		Rows:        len(resultSet.Rows),
	}, nil
}

// defaultQuery is the recent-orders query run when no SQL is supplied.
func defaultQuery(table string) string {
	return fmt.Sprintf(`SELECT * FROM "%s" ORDER BY orderdate DESC LIMIT %d`, table, defaultQueryLimit)
}

func printResultSet(resultSet *orderquery.ResultSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(resultSet.Columns, "\t"))
	for _, row := range resultSet.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

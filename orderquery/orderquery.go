// Package orderquery runs SQL against the order lake through Athena and
// returns fully-materialized result sets.
package orderquery

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/athena"
	"github.com/aws/aws-sdk-go/service/athena/athenaiface"
	"github.com/google/uuid"
	"github.com/jpillora/backoff"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
)

// ResultSet holds one query's output. Rows excludes the header row Athena
// returns for CSV-backed tables.
type ResultSet struct {
	Columns     []string
	Rows        [][]string
	ExecutionId string
}

type Runner struct {
	athenaClient athenaiface.AthenaAPI

	pollMin time.Duration
	pollMax time.Duration
}

func New(athenaClient athenaiface.AthenaAPI) *Runner {
	return &Runner{
		athenaClient: athenaClient,
		pollMin:      time.Second,
		pollMax:      10 * time.Second,
	}
}

// Run starts sql in database, waits for the execution to finish, and pages the
// full result set back. resultsLocation is the s3:// prefix Athena writes its
// output files to.
func (r *Runner) Run(ctx context.Context, sql, database, resultsLocation string) (*ResultSet, error) {
	startOutput, err := r.athenaClient.StartQueryExecutionWithContext(ctx, &athena.StartQueryExecutionInput{
		ClientRequestToken: aws.String(uuid.New().String()),
		QueryString:        aws.String(sql),
		QueryExecutionContext: &athena.QueryExecutionContext{
			Database: aws.String(database),
		},
		ResultConfiguration: &athena.ResultConfiguration{
			OutputLocation: aws.String(resultsLocation),
		},
	})
	if err != nil {
		return nil, oops.Wrapf(err, "failed execution of athena sql query: %s", sql)
	}

	executionId := aws.StringValue(startOutput.QueryExecutionId)
	slog.Infow(ctx, "started athena query", "executionId", executionId, "database", database)

	if err := r.waitForExecution(ctx, executionId); err != nil {
		return nil, err
	}

	resultSet, err := r.fetchResults(ctx, executionId)
	if err != nil {
		return nil, err
	}
	resultSet.ExecutionId = executionId
	return resultSet, nil
}

func (r *Runner) waitForExecution(ctx context.Context, executionId string) error {
	b := &backoff.Backoff{
		Min:    r.pollMin,
		Max:    r.pollMax,
		Factor: 2,
		Jitter: true,
	}

	for {
		output, err := r.athenaClient.GetQueryExecutionWithContext(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(executionId),
		})
		if err != nil {
			return oops.Wrapf(err, "describing athena execution %s", executionId)
		}
		if output.QueryExecution == nil || output.QueryExecution.Status == nil {
			return oops.Errorf("execution %s missing status in GetQueryExecution response", executionId)
		}

		status := output.QueryExecution.Status
		switch aws.StringValue(status.State) {
		case athena.QueryExecutionStateSucceeded:
			return nil
		case athena.QueryExecutionStateFailed, athena.QueryExecutionStateCancelled:
			return oops.Errorf("athena execution %s %s: %s",
				executionId, aws.StringValue(status.State), aws.StringValue(status.StateChangeReason))
		}

		select {
		case <-ctx.Done():
			return oops.Wrapf(ctx.Err(), "waiting for athena execution %s", executionId)
		case <-time.After(b.Duration()):
		}
	}
}

func (r *Runner) fetchResults(ctx context.Context, executionId string) (*ResultSet, error) {
	resultSet := &ResultSet{}
	firstPage := true

	err := r.athenaClient.GetQueryResultsPagesWithContext(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: aws.String(executionId),
	}, func(output *athena.GetQueryResultsOutput, lastPage bool) bool {
		rows := output.ResultSet.Rows
		if firstPage {
			firstPage = false
			if metadata := output.ResultSet.ResultSetMetadata; metadata != nil {
				for _, col := range metadata.ColumnInfo {
					resultSet.Columns = append(resultSet.Columns, aws.StringValue(col.Name))
				}
			}
			// Athena echoes the column names as the first data row.
			if len(rows) > 0 {
				rows = rows[1:]
			}
		}
		for _, row := range rows {
			values := make([]string, 0, len(row.Data))
			for _, datum := range row.Data {
				values = append(values, aws.StringValue(datum.VarCharValue))
			}
			resultSet.Rows = append(resultSet.Rows, values)
		}
		return true
	})
	if err != nil {
		return nil, oops.Wrapf(err, "fetching results for athena execution %s", executionId)
	}

	return resultSet, nil
}

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/invocationlogs"
)

// LogsResult is the typed result returned by LogsOp.Execute().
type LogsResult struct {
	// LogGroup is the group the events came from.
	LogGroup string `json:"logGroup"`

	// Events is the number of events printed.
	Events int `json:"events"`
}

// LogsOp prints the latest filter Lambda invocation logs.
type LogsOp struct {
	// Input fields
	Region   string
	LogGroup string
	Limit    int64

	// Internal state (populated during Validate)
	viewer *invocationlogs.Viewer
}

// NewLogsOp creates a new logs operation.
func NewLogsOp(region, logGroup string, limit int64) *LogsOp {
	return &LogsOp{
		Region:   region,
		LogGroup: logGroup,
		Limit:    limit,
	}
}

// Name implements orderlakeops.Operation.
func (o *LogsOp) Name() string {
	return "logs"
}

// Description implements orderlakeops.Operation.
func (o *LogsOp) Description() string {
	return "Show the latest filter Lambda invocation logs"
}

// Validate implements orderlakeops.Operation.
func (o *LogsOp) Validate(ctx context.Context) error {
	if o.Region == "" {
		return oops.Errorf("--region is required")
	}
	if o.LogGroup == "" {
		return oops.Errorf("--log-group is required")
	}
	if o.Limit <= 0 {
		return oops.Errorf("--limit must be positive, got %d", o.Limit)
	}

	sess, err := newSession(o.Region)
	if err != nil {
		return oops.Wrapf(err, "failed to create AWS session")
	}
	o.viewer = invocationlogs.New(cloudwatchlogs.New(sess))

	return nil
}

// Plan implements orderlakeops.Operation.
func (o *LogsOp) Plan(ctx context.Context) error {
	fmt.Println()
	fmt.Println("📋 Logs Plan")
	fmt.Println("───────────────────────────────────────")
	fmt.Printf("   Region:     %s\n", o.Region)
	fmt.Printf("   Log Group:  %s\n", o.LogGroup)
	fmt.Printf("   Limit:      %d events\n", o.Limit)
	fmt.Println()
	return nil
}

// Execute implements orderlakeops.Operation.
// Returns *LogsResult.
func (o *LogsOp) Execute(ctx context.Context) (any, error) {
	if o.viewer == nil {
		return nil, oops.Errorf("Validate() must be called before Execute()")
	}

	events, err := o.viewer.FetchLatest(ctx, o.LogGroup, o.Limit)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to fetch logs for %s", o.LogGroup)
	}

	if len(events) == 0 {
		fmt.Println("No events found. Has the filter Lambda run yet?")
	}
	for _, event := range events {
		fmt.Printf("%s  %s\n", event.Timestamp.Format("2006-01-02T15:04:05Z"), strings.TrimRight(event.Message, "\n"))
	}

	slog.Infow(ctx, "invocation logs fetched",
		"region", o.Region,
		"logGroup", o.LogGroup,
		"events", len(events),
	)

	return &LogsResult{
		LogGroup: o.LogGroup,
		Events:   len(events),
	}, nil
}

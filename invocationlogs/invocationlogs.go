// Package invocationlogs fetches recent Lambda invocation output from
// CloudWatch Logs for operator inspection.
package invocationlogs

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
	"github.com/juju/ratelimit"
	"github.com/samsarahq/go/oops"
)

// Event is one log line with its emission time.
type Event struct {
	Timestamp time.Time
	Stream    string
	Message   string
}

type Viewer struct {
	logsClient cloudwatchlogsiface.CloudWatchLogsAPI

	// readBucket throttles GetLogEvents paging; CloudWatch rejects bursts
	// well below its documented per-account quota.
	readBucket *ratelimit.Bucket
}

const readRequestsPerSecond = 5

func New(logsClient cloudwatchlogsiface.CloudWatchLogsAPI) *Viewer {
	return &Viewer{
		logsClient: logsClient,
		readBucket: ratelimit.NewBucketWithRate(readRequestsPerSecond, readRequestsPerSecond),
	}
}

// FetchLatest returns up to limit events from the most recently written
// streams of logGroup, oldest first.
func (v *Viewer) FetchLatest(ctx context.Context, logGroup string, limit int64) ([]Event, error) {
	streamsOutput, err := v.logsClient.DescribeLogStreamsWithContext(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(logGroup),
		OrderBy:      aws.String(cloudwatchlogs.OrderByLastEventTime),
		Descending:   aws.Bool(true),
	})
	if err != nil {
		return nil, oops.Wrapf(err, "describing log streams for %s", logGroup)
	}

	var events []Event
	remaining := limit
	for _, stream := range streamsOutput.LogStreams {
		if remaining <= 0 {
			break
		}

		v.readBucket.Wait(1)
		eventsOutput, err := v.logsClient.GetLogEventsWithContext(ctx, &cloudwatchlogs.GetLogEventsInput{
			LogGroupName:  aws.String(logGroup),
			LogStreamName: stream.LogStreamName,
			Limit:         aws.Int64(remaining),
			StartFromHead: aws.Bool(false),
		})
		if err != nil {
			return nil, oops.Wrapf(err, "fetching events for %s/%s", logGroup, aws.StringValue(stream.LogStreamName))
		}

		// Newest streams come first but each stream reads oldest-first, so
		// prepend to keep the whole slice oldest-first.
		var streamEvents []Event
		for _, event := range eventsOutput.Events {
			streamEvents = append(streamEvents, Event{
				Timestamp: time.UnixMilli(aws.Int64Value(event.Timestamp)).UTC(),
				Stream:    aws.StringValue(stream.LogStreamName),
				Message:   aws.StringValue(event.Message),
			})
		}
		events = append(streamEvents, events...)
		remaining -= int64(len(streamEvents))
	}

	return events, nil
}

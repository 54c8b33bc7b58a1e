// Package monitoring posts invocation result counters to Datadog. When no API
// key is configured every call is a no-op, so library code can instrument
// unconditionally.
package monitoring

import (
	"context"
	"os"
	"sync"
	"time"

	datadog "github.com/zorkian/go-datadog-api"

	"orderlake.io/orderlake/helpers/slog"
)

var (
	clientOnce sync.Once
	client     *datadog.Client
)

func datadogClient() *datadog.Client {
	clientOnce.Do(func() {
		apiKey := os.Getenv("DATADOG_API_KEY")
		if apiKey == "" {
			return
		}
		client = datadog.NewClient(apiKey, os.Getenv("DATADOG_APP_KEY"))
	})
	return client
}

// IncrResult increments metric with a result:success or result:error tag
// depending on err. Posting failures are logged and swallowed; metrics must
// never fail an invocation.
func IncrResult(ctx context.Context, err error, metric string, tags ...string) {
	ddClient := datadogClient()
	if ddClient == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}
	tags = append(tags, "result:"+result)

	ts := float64(time.Now().Unix())
	value := float64(1)
	m := datadog.Metric{
		Points: []datadog.DataPoint{{&ts, &value}},
		Tags:   tags,
	}
	m.SetMetric(metric)
	m.SetType("count")

	if postErr := ddClient.PostMetrics([]datadog.Metric{m}); postErr != nil {
		slog.Warnw(ctx, "failed to post datadog metric", "metric", metric, "error", postErr.Error())
	}
}

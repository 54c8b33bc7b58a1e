/*
orderfilterfunc filters stale orders out of newly uploaded order CSVs.

It is triggered once per object created under the raw/ prefix of the data
bucket. For each object it reads the CSV, drops orders that are pending or
cancelled and 30+ days old at invocation time, and writes the surviving rows to
processed/filtered_<name> in the same bucket. Any decode, parse, or write
failure aborts the invocation with no output written.

	output: {
		"results": [
			{"file": "raw/orders.csv", "total": 200, "kept": 154,
			 "filtered": 46, "output": "processed/filtered_orders.csv"}
		]
	}
*/
package main

import (
	"bytes"
	"context"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/benbjohnson/clock"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/lakepaths"
	"orderlake.io/orderlake/lambdafunctions/util"
	"orderlake.io/orderlake/lambdafunctions/util/middleware"
	"orderlake.io/orderlake/monitoring"
	"orderlake.io/orderlake/orderfilter"
	"orderlake.io/orderlake/orderstore"
)

type OrderFilterFunction struct {
	store *orderstore.OrderStore
	clock clock.Clock
}

type FileResult struct {
	File     string `json:"file"`
	Total    int    `json:"total"`
	Kept     int    `json:"kept"`
	Filtered int    `json:"filtered"`
	Output   string `json:"output"`
}

type FilterOutput struct {
	Results []FileResult `json:"results"`
}

func (f *OrderFilterFunction) HandleEvent(ctx context.Context, event events.S3Event) (FilterOutput, error) {
	var output FilterOutput
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		// Object keys arrive URL-encoded in S3 notifications.
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return output, oops.Wrapf(err, "unescaping object key %q", record.S3.Object.Key)
		}

		if !lakepaths.IsRawObject(key) {
			slog.Warnw(ctx, "ignoring object outside raw namespace", "bucket", bucket, "key", key)
			continue
		}

		result, err := f.processObject(ctx, bucket, key)
		monitoring.IncrResult(ctx, err, "orderfilter.invocation", "bucket:"+bucket)
		if err != nil {
			return output, oops.Wrapf(err, "processing s3://%s/%s", bucket, key)
		}
		output.Results = append(output.Results, result)
	}
	return output, nil
}

func (f *OrderFilterFunction) processObject(ctx context.Context, bucket, key string) (FileResult, error) {
	body, err := f.store.GetOrdersCSV(ctx, bucket, key)
	if err != nil {
		return FileResult{}, err
	}
	defer body.Close()

	orders, err := orderfilter.Decode(body)
	if err != nil {
		return FileResult{}, oops.Wrapf(err, "decoding %s", key)
	}

	result := orderfilter.Filter(orders, f.clock.Now())

	// Buffer the whole output first: a failed pass must leave nothing behind.
	var buf bytes.Buffer
	if err := orderfilter.Encode(&buf, result.Kept); err != nil {
		return FileResult{}, oops.Wrapf(err, "encoding filtered output for %s", key)
	}

	outputKey := lakepaths.OutputKey(key)
	if err := f.store.PutFilteredCSV(ctx, bucket, outputKey, buf.Bytes()); err != nil {
		return FileResult{}, err
	}

	slog.Infow(ctx, "processed order file",
		"file", key,
		"total", result.Total,
		"kept", len(result.Kept),
		"filtered", result.Filtered,
		"output", outputKey,
	)

	return FileResult{
		File:     key,
		Total:    result.Total,
		Kept:     len(result.Kept),
		Filtered: result.Filtered,
		Output:   outputKey,
	}, nil
}

func main() {
	sess := session.Must(session.NewSession(util.RetryerConfig))
	function := &OrderFilterFunction{
		store: orderstore.New(s3.New(sess)),
		clock: clock.New(),
	}
	middleware.StartWrapped(function.HandleEvent, middleware.LogInvocation)
}

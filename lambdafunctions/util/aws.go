// Package util carries shared plumbing for orderlake lambda functions.
package util

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
)

// RetryerConfig is the standard AWS client config for lambda functions. S3
// reads during an invocation burst can throttle, so retries are generous but
// bounded well under the lambda timeout.
var RetryerConfig = &aws.Config{
	Retryer: &client.DefaultRetryer{
		NumMaxRetries:    8,
		MinRetryDelay:    50 * time.Millisecond,
		MinThrottleDelay: time.Second,
		MaxRetryDelay:    10 * time.Second,
		MaxThrottleDelay: 10 * time.Second,
	},
}

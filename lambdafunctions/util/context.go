package util

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// RequestId returns the platform-assigned request id for this invocation, or
// "" when not running under lambda (tests, local runs).
func RequestId(ctx context.Context) string {
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return ""
	}
	return lc.AwsRequestID
}

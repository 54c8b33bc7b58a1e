// Package lakepaths defines the S3 layout of the order lake: where raw order
// files land, where filtered output is written, and how output keys are derived
// from input keys.
package lakepaths

import (
	"path"
	"strings"

	"github.com/samsarahq/go/oops"
)

const (
	// RawPrefix is the namespace new order CSVs are uploaded to.
	RawPrefix = "raw/"

	// ProcessedPrefix is the namespace filtered output is written to.
	ProcessedPrefix = "processed/"

	// FilteredTag prefixes the base name of every filtered output object.
	FilteredTag = "filtered_"
)

// OutputKey derives the processed-object key for a raw-object key:
// raw/orders.csv -> processed/filtered_orders.csv. Any leading prefix on the
// input is dropped; only the base name carries over.
func OutputKey(rawKey string) string {
	return ProcessedPrefix + FilteredTag + path.Base(rawKey)
}

// IsRawObject reports whether key names an object in the raw namespace.
// The prefix marker object itself does not count.
func IsRawObject(key string) bool {
	return strings.HasPrefix(key, RawPrefix) && key != RawPrefix
}

// ParseS3Path splits an s3://bucket/key path into bucket and key.
func ParseS3Path(s3Path string) (bucket, key string, err error) {
	if !strings.HasPrefix(s3Path, "s3://") {
		return "", "", oops.Errorf("invalid S3 path format: %s", s3Path)
	}

	parts := strings.SplitN(strings.TrimPrefix(s3Path, "s3://"), "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", oops.Errorf("invalid S3 path format: bucket name cannot be empty: %s", s3Path)
	}
	if len(parts) > 1 {
		key = parts[1]
	}
	return bucket, key, nil
}

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/lakepaths"
	"orderlake.io/orderlake/orderfilter"
)

// UploadResult is the typed result returned by UploadOp.Execute().
// Use type assertion to access: result.(*pipeline.UploadResult)
type UploadResult struct {
	// Bucket is the data bucket the file landed in.
	Bucket string `json:"bucket"`

	// Key is the raw-namespace object key.
	Key string `json:"key"`

	// Rows is the number of order rows in the uploaded file.
	Rows int `json:"rows"`

	// Bytes is the uploaded object size.
	Bytes int64 `json:"bytes"`
}

// UploadOp uploads a local orders CSV into the data bucket's raw namespace,
// which triggers the filter Lambda.
type UploadOp struct {
	// Input fields
	Region   string
	Bucket   string
	FilePath string
	Key      string

	// Internal state (populated during Validate/Plan)
	client *s3v2.Client
	body   []byte
	rows   int
	key    string
}

// NewUploadOp creates a new upload operation. key may be empty to derive the
// object key from the file name.
func NewUploadOp(region, bucket, filePath, key string) *UploadOp {
	return &UploadOp{
		Region:   region,
		Bucket:   bucket,
		FilePath: filePath,
		Key:      key,
	}
}

// Name implements orderlakeops.Operation.
func (o *UploadOp) Name() string {
	return "upload"
}

// Description implements orderlakeops.Operation.
func (o *UploadOp) Description() string {
	return "Upload an orders CSV into the raw namespace of the data bucket"
}

// Validate implements orderlakeops.Operation.
func (o *UploadOp) Validate(ctx context.Context) error {
	if o.Region == "" {
		return oops.Errorf("--region is required")
	}
	if o.Bucket == "" {
		return oops.Errorf("--bucket is required")
	}
	if o.FilePath == "" {
		return oops.Errorf("--file is required")
	}

	body, err := os.ReadFile(o.FilePath)
	if err != nil {
		return oops.Wrapf(err, "failed to read %s", o.FilePath)
	}

	// Uploading a malformed file would make every Lambda pass over it fail,
	// so decode it up front with the same rules the Lambda applies.
	orders, err := orderfilter.Decode(bytes.NewReader(body))
	if err != nil {
		return oops.Wrapf(err, "%s is not a valid orders CSV", o.FilePath)
	}

	client, err := newS3Client(ctx, o.Region)
	if err != nil {
		return oops.Wrapf(err, "failed to create S3 client")
	}

	o.client = client
	o.body = body
	o.rows = len(orders)
	o.key = destinationKey(o.FilePath, o.Key)

	return nil
}

// Plan implements orderlakeops.Operation.
func (o *UploadOp) Plan(ctx context.Context) error {
	fmt.Println()
	fmt.Println("📋 Upload Plan")
	fmt.Println("───────────────────────────────────────")
	fmt.Printf("   Region:       %s\n", o.Region)
	fmt.Printf("   File:         %s\n", o.FilePath)
	fmt.Printf("   Rows:         %d\n", o.rows)
	fmt.Printf("   Size:         %d bytes\n", len(o.body))
	fmt.Printf("   Destination:  s3://%s/%s\n", o.Bucket, o.key)
	fmt.Printf("   Output:       s3://%s/%s\n", o.Bucket, lakepaths.OutputKey(o.key))
	fmt.Println()

	if o.rows == 0 {
		fmt.Println("⚠️  Warning: file has a header but no order rows")
	}

	return nil
}

// Execute implements orderlakeops.Operation.
// Returns *UploadResult.
func (o *UploadOp) Execute(ctx context.Context) (any, error) {
	if o.client == nil {
		return nil, oops.Errorf("Validate() must be called before Execute()")
	}

	fmt.Println("🚀 Uploading...")

	if _, err := o.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      aws.String(o.Bucket),
		Key:         aws.String(o.key),
		Body:        bytes.NewReader(o.body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return nil, oops.Wrapf(err, "failed to upload s3://%s/%s", o.Bucket, o.key)
	}

	fmt.Println()
	fmt.Println("✅ Upload complete!")
	fmt.Printf("   Object:  s3://%s/%s\n", o.Bucket, o.key)
	fmt.Printf("   Rows:    %d\n", o.rows)
	fmt.Println()
	fmt.Println("Watch the filter Lambda:")
	fmt.Printf("   orderlakeops pipeline logs --config=<config>\n")

	slog.Infow(ctx, "orders file uploaded",
		"region", o.Region,
		"bucket", o.Bucket,
		"key", o.key,
		"rows", o.rows,
	)

	return &UploadResult{
		Bucket: o.Bucket,
		Key:    o.key,
		Rows:   o.rows,
		Bytes:  int64(len(o.body)),
	}, nil
}

// destinationKey derives the raw-namespace object key for an upload. An empty
// key falls back to the file's base name; keys outside the raw namespace are
// moved under it so the bucket notification fires.
func destinationKey(filePath, key string) string {
	if key == "" {
		key = filepath.Base(filePath)
	}
	if !strings.HasPrefix(key, lakepaths.RawPrefix) {
		key = lakepaths.RawPrefix + key
	}
	return key
}

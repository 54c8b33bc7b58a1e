// Package pipeline provides order lake operational automation: seeding and
// uploading order files, driving the catalog crawler, running retention
// queries, and tailing filter Lambda logs.
package pipeline

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	awsv1 "github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/samsarahq/go/oops"
)

// awsConfig loads the AWS config for a given region.
// Supports multiple credential sources via the default provider chain:
// - AWS_PROFILE environment variable for specific profiles
// - EC2 instance profiles
// - Environment variables (AWS_ACCESS_KEY_ID, etc.)
// - Shared credentials/config files
func awsConfig(ctx context.Context, region string) (*awsv2.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, oops.Wrapf(err, "failed to load AWS config for region %s", region)
	}
	return &cfg, nil
}

func newS3Client(ctx context.Context, region string) (*s3v2.Client, error) {
	cfg, err := awsConfig(ctx, region)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create AWS config for region %s", region)
	}
	return s3v2.NewFromConfig(*cfg), nil
}

// newSession builds a v1 SDK session for the service clients the library
// packages consume (Glue, Athena, CloudWatch Logs).
func newSession(region string) (*session.Session, error) {
	sess, err := session.NewSession(&awsv1.Config{Region: awsv1.String(region)})
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create AWS session for region %s", region)
	}
	return sess, nil
}

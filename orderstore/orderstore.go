// Package orderstore reads raw order documents from S3 and writes filtered
// output back to the processed namespace.
package orderstore

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/samsarahq/go/oops"
)

const csvContentType = "text/csv"

type OrderStore struct {
	s3Client s3iface.S3API
}

func New(s3Client s3iface.S3API) *OrderStore {
	return &OrderStore{s3Client: s3Client}
}

// GetOrdersCSV returns the body of the raw object. The caller owns the reader.
func (s *OrderStore) GetOrdersCSV(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	output, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, oops.Wrapf(err, "get s3://%s/%s", bucket, key)
	}
	return output.Body, nil
}

// PutFilteredCSV writes a fully-buffered filtered document. Callers must not
// stream: nothing may be written on a failed pass, so the whole body is built
// before this call.
func (s *OrderStore) PutFilteredCSV(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(csvContentType),
	})
	return oops.Wrapf(err, "put s3://%s/%s", bucket, key)
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDestinationKey(t *testing.T) {
	t.Run("derives key from file name", func(t *testing.T) {
		got := destinationKey("/tmp/exports/orders.csv", "")
		if got != "raw/orders.csv" {
			t.Fatalf("expected %q, got %q", "raw/orders.csv", got)
		}
	})

	t.Run("keeps explicit raw keys", func(t *testing.T) {
		got := destinationKey("/tmp/orders.csv", "raw/march-orders.csv")
		if got != "raw/march-orders.csv" {
			t.Fatalf("expected %q, got %q", "raw/march-orders.csv", got)
		}
	})

	t.Run("moves bare keys under the raw namespace", func(t *testing.T) {
		got := destinationKey("/tmp/orders.csv", "march-orders.csv")
		if got != "raw/march-orders.csv" {
			t.Fatalf("expected %q, got %q", "raw/march-orders.csv", got)
		}
	})
}

func TestUploadOpValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires region", func(t *testing.T) {
		op := NewUploadOp("", "lake-bucket", "orders.csv", "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for missing region")
		}
	})

	t.Run("requires bucket", func(t *testing.T) {
		op := NewUploadOp("us-west-2", "", "orders.csv", "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for missing bucket")
		}
	})

	t.Run("requires file", func(t *testing.T) {
		op := NewUploadOp("us-west-2", "lake-bucket", "", "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		op := NewUploadOp("us-west-2", "lake-bucket", filepath.Join(t.TempDir(), "nope.csv"), "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for unreadable file")
		}
	})

	t.Run("rejects malformed orders file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders.csv")
		doc := "OrderID,Customer,Amount,Status,OrderDate\nO0001,Alice,120.50,confirmed,not-a-date\n"
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}

		op := NewUploadOp("us-west-2", "lake-bucket", path, "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for malformed orders file")
		}
	})
}

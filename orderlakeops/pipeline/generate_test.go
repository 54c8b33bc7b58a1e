package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"orderlake.io/orderlake/orderfilter"
)

func TestGenerateOpValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires positive count", func(t *testing.T) {
		op := NewGenerateOp(0, 42, "orders.csv")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for zero count")
		}
	})

	t.Run("requires output path", func(t *testing.T) {
		op := NewGenerateOp(10, 42, "")
		if err := op.Validate(ctx); err == nil {
			t.Fatal("expected error for missing output path")
		}
	})
}

func TestGenerateOpExecute(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.csv")

	op := NewGenerateOp(25, 42, path)
	if err := op.Validate(ctx); err != nil {
		t.Fatal(err)
	}
	result, err := op.Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}

	genResult := result.(*GenerateResult)
	if genResult.Rows != 25 {
		t.Fatalf("expected 25 rows, got %d", genResult.Rows)
	}

	// The written file must round-trip through the same decoder the Lambda
	// uses.
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	orders, err := orderfilter.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 25 {
		t.Fatalf("expected 25 decoded orders, got %d", len(orders))
	}
	if orders[0].OrderID != "O0001" || orders[24].OrderID != "O0025" {
		t.Fatalf("unexpected order ids %q..%q", orders[0].OrderID, orders[24].OrderID)
	}
}

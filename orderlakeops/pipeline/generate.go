package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/samsarahq/go/oops"
	progressbar "github.com/schollz/progressbar/v3"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/orderfilter"
	"orderlake.io/orderlake/ordergen"
)

// GenerateResult is the typed result returned by GenerateOp.Execute().
type GenerateResult struct {
	// Path is the local file the orders were written to.
	Path string `json:"path"`

	// Rows is the number of generated order rows.
	Rows int `json:"rows"`
}

// GenerateOp writes a CSV of fake orders to a local file, ready for the
// upload operation.
type GenerateOp struct {
	// Input fields
	Count   int
	Seed    int64
	OutPath string
}

// NewGenerateOp creates a new generate operation.
func NewGenerateOp(count int, seed int64, outPath string) *GenerateOp {
	return &GenerateOp{
		Count:   count,
		Seed:    seed,
		OutPath: outPath,
	}
}

// Name implements orderlakeops.Operation.
func (o *GenerateOp) Name() string {
	return "generate"
}

// Description implements orderlakeops.Operation.
func (o *GenerateOp) Description() string {
	return "Generate a CSV of fake orders for seeding the pipeline"
}

// Validate implements orderlakeops.Operation.
func (o *GenerateOp) Validate(ctx context.Context) error {
	if o.Count <= 0 {
		return oops.Errorf("--count must be positive, got %d", o.Count)
	}
	if o.OutPath == "" {
		return oops.Errorf("--out is required")
	}
	return nil
}

// Plan implements orderlakeops.Operation.
func (o *GenerateOp) Plan(ctx context.Context) error {
	fmt.Println()
	fmt.Println("📋 Generate Plan")
	fmt.Println("───────────────────────────────────────")
	fmt.Printf("   Orders:  %d\n", o.Count)
	fmt.Printf("   Seed:    %d\n", o.Seed)
	fmt.Printf("   Output:  %s\n", o.OutPath)
	fmt.Println()
	return nil
}

// Execute implements orderlakeops.Operation.
// Returns *GenerateResult.
func (o *GenerateOp) Execute(ctx context.Context) (any, error) {
	f, err := os.Create(o.OutPath)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create %s", o.OutPath)
	}
	defer f.Close()

	bar := progressbar.NewOptions(o.Count,
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(time.Second))
	defer bar.Finish()

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := ordergen.New(seed, time.Now())
	w := csv.NewWriter(f)
	if err := w.Write(orderfilter.Header); err != nil {
		return nil, oops.Wrapf(err, "failed to write header")
	}
	for i := 0; i < o.Count; i++ {
		order := gen.Next()
		record := []string{
			order.OrderID,
			order.Customer,
			order.Amount,
			order.Status,
			order.OrderDate.Format(orderfilter.DateFormat),
		}
		if err := w.Write(record); err != nil {
			return nil, oops.Wrapf(err, "failed to write order %s", order.OrderID)
		}
		bar.Add(1)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, oops.Wrapf(err, "failed to flush %s", o.OutPath)
	}

	fmt.Println()
	fmt.Println("✅ Orders generated!")
	fmt.Printf("   File:  %s\n", o.OutPath)
	fmt.Printf("   Rows:  %d\n", o.Count)

	slog.Infow(ctx, "fake orders generated", "path", o.OutPath, "rows", o.Count, "seed", o.Seed)

	return &GenerateResult{
		Path: o.OutPath,
		Rows: o.Count,
	}, nil
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/service/glue"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/ordercatalog"
)

// CrawlerRunResult is the typed result returned by CrawlerRunOp.Execute().
type CrawlerRunResult struct {
	// Crawler is the Glue crawler that ran.
	Crawler string `json:"crawler"`

	// Duration is how long the crawl took end to end.
	Duration time.Duration `json:"duration"`
}

// CrawlerRunOp starts the Glue crawler over the processed namespace and waits
// for it to finish, so queries see newly filtered partitions.
type CrawlerRunOp struct {
	// Input fields
	Region  string
	Crawler string
	Wait    bool

	// Internal state (populated during Validate)
	catalog *ordercatalog.Catalog
}

// NewCrawlerRunOp creates a new crawler run operation.
func NewCrawlerRunOp(region, crawler string, wait bool) *CrawlerRunOp {
	return &CrawlerRunOp{
		Region:  region,
		Crawler: crawler,
		Wait:    wait,
	}
}

// Name implements orderlakeops.Operation.
func (o *CrawlerRunOp) Name() string {
	return "crawler-run"
}

// Description implements orderlakeops.Operation.
func (o *CrawlerRunOp) Description() string {
	return "Run the Glue crawler over the processed namespace"
}

// Validate implements orderlakeops.Operation.
func (o *CrawlerRunOp) Validate(ctx context.Context) error {
	if o.Region == "" {
		return oops.Errorf("--region is required")
	}
	if o.Crawler == "" {
		return oops.Errorf("--crawler is required")
	}

	sess, err := newSession(o.Region)
	if err != nil {
		return oops.Wrapf(err, "failed to create AWS session")
	}
	o.catalog = ordercatalog.New(glue.New(sess))

	return nil
}

// Plan implements orderlakeops.Operation.
func (o *CrawlerRunOp) Plan(ctx context.Context) error {
	fmt.Println()
	fmt.Println("📋 Crawler Run Plan")
	fmt.Println("───────────────────────────────────────")
	fmt.Printf("   Region:   %s\n", o.Region)
	fmt.Printf("   Crawler:  %s\n", o.Crawler)
	fmt.Printf("   Wait:     %v\n", o.Wait)
	fmt.Println()
	return nil
}

// Execute implements orderlakeops.Operation.
// Returns *CrawlerRunResult.
func (o *CrawlerRunOp) Execute(ctx context.Context) (any, error) {
	if o.catalog == nil {
		return nil, oops.Errorf("Validate() must be called before Execute()")
	}

	start := time.Now()

	fmt.Println("🚀 Starting crawler...")
	if err := o.catalog.RunCrawler(ctx, o.Crawler); err != nil {
		return nil, oops.Wrapf(err, "failed to start crawler %s", o.Crawler)
	}

	if o.Wait {
		fmt.Println("   Waiting for crawl to finish...")
		if err := o.catalog.WaitForCrawler(ctx, o.Crawler); err != nil {
			return nil, oops.Wrapf(err, "crawler %s did not finish cleanly", o.Crawler)
		}
	}

	duration := time.Since(start)

	fmt.Println()
	fmt.Println("✅ Crawler run complete!")
	fmt.Printf("   Crawler:   %s\n", o.Crawler)
	fmt.Printf("   Duration:  %s\n", duration.Round(time.Second))

	slog.Infow(ctx, "crawler run completed",
		"region", o.Region,
		"crawler", o.Crawler,
		"durationMs", duration.Milliseconds(),
	)

	return &CrawlerRunResult{
		Crawler:  o.Crawler,
		Duration: duration,
	}, nil
}

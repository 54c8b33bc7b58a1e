// Package ordercatalog manages the Glue side of the order lake: the catalog
// database, the filtered-orders table definition, and crawler runs over the
// processed prefix.
package ordercatalog

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/glue"
	"github.com/aws/aws-sdk-go/service/glue/glueiface"
	"github.com/jpillora/backoff"
	"github.com/samsarahq/go/oops"

	"orderlake.io/orderlake/helpers/slog"
)

const (
	csvSerdeLibrary = "org.apache.hadoop.hive.serde2.OpenCSVSerde"
	csvInputFormat  = "org.apache.hadoop.mapred.TextInputFormat"
	csvOutputFormat = "org.apache.hadoop.hive.ql.io.HiveIgnoreKeyTextOutputFormat"
)

// orderColumns is the Glue schema of the filtered-orders table, matching the
// CSV header column for column. OpenCSVSerde reads everything as strings, so
// typing beyond that is left to query-time casts.
var orderColumns = []*glue.Column{
	{Name: aws.String("orderid"), Type: aws.String("string")},
	{Name: aws.String("customer"), Type: aws.String("string")},
	{Name: aws.String("amount"), Type: aws.String("string")},
	{Name: aws.String("status"), Type: aws.String("string")},
	{Name: aws.String("orderdate"), Type: aws.String("string")},
}

type Catalog struct {
	glueClient glueiface.GlueAPI

	// crawler polling knobs, overridable in tests
	pollMin time.Duration
	pollMax time.Duration
}

func New(glueClient glueiface.GlueAPI) *Catalog {
	return &Catalog{
		glueClient: glueClient,
		pollMin:    2 * time.Second,
		pollMax:    30 * time.Second,
	}
}

// EnsureDatabase creates the catalog database if it does not already exist.
func (c *Catalog) EnsureDatabase(ctx context.Context, name string) error {
	_, err := c.glueClient.CreateDatabaseWithContext(ctx, &glue.CreateDatabaseInput{
		DatabaseInput: &glue.DatabaseInput{
			Name: aws.String(name),
		},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == glue.ErrCodeAlreadyExistsException {
			slog.Infow(ctx, "glue database already exists", "database", name)
			return nil
		}
		return oops.Wrapf(err, "creating glue database %s", name)
	}
	slog.Infow(ctx, "created glue database", "database", name)
	return nil
}

// EnsureOrdersTable registers the filtered-orders table over s3Location with an
// OpenCSVSerde storage descriptor. An existing table is left untouched.
func (c *Catalog) EnsureOrdersTable(ctx context.Context, database, table, s3Location string) error {
	_, err := c.glueClient.CreateTableWithContext(ctx, &glue.CreateTableInput{
		DatabaseName: aws.String(database),
		TableInput: &glue.TableInput{
			Name:      aws.String(table),
			TableType: aws.String("EXTERNAL_TABLE"),
			Parameters: map[string]*string{
				"classification":         aws.String("csv"),
				"skip.header.line.count": aws.String("1"),
			},
			StorageDescriptor: &glue.StorageDescriptor{
				Columns:      orderColumns,
				Location:     aws.String(s3Location),
				InputFormat:  aws.String(csvInputFormat),
				OutputFormat: aws.String(csvOutputFormat),
				SerdeInfo: &glue.SerDeInfo{
					SerializationLibrary: aws.String(csvSerdeLibrary),
					Parameters: map[string]*string{
						"separatorChar": aws.String(","),
					},
				},
			},
		},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == glue.ErrCodeAlreadyExistsException {
			slog.Infow(ctx, "glue table already exists", "database", database, "table", table)
			return nil
		}
		return oops.Wrapf(err, "creating glue table %s.%s", database, table)
	}
	slog.Infow(ctx, "created glue table", "database", database, "table", table, "location", s3Location)
	return nil
}

// RunCrawler starts the crawler. A crawler that is already running counts as
// started.
func (c *Catalog) RunCrawler(ctx context.Context, name string) error {
	_, err := c.glueClient.StartCrawlerWithContext(ctx, &glue.StartCrawlerInput{
		Name: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == glue.ErrCodeCrawlerRunningException {
			slog.Infow(ctx, "crawler already running", "crawler", name)
			return nil
		}
		return oops.Wrapf(err, "starting crawler %s", name)
	}
	slog.Infow(ctx, "started crawler", "crawler", name)
	return nil
}

// WaitForCrawler polls until the crawler returns to READY, or ctx is done.
func (c *Catalog) WaitForCrawler(ctx context.Context, name string) error {
	b := &backoff.Backoff{
		Min:    c.pollMin,
		Max:    c.pollMax,
		Factor: 2,
		Jitter: true,
	}

	for {
		output, err := c.glueClient.GetCrawlerWithContext(ctx, &glue.GetCrawlerInput{
			Name: aws.String(name),
		})
		if err != nil {
			return oops.Wrapf(err, "describing crawler %s", name)
		}
		if output.Crawler == nil {
			return oops.Errorf("crawler %s missing from GetCrawler response", name)
		}

		state := aws.StringValue(output.Crawler.State)
		if state == glue.CrawlerStateReady {
			if lastCrawl := output.Crawler.LastCrawl; lastCrawl != nil && aws.StringValue(lastCrawl.Status) == glue.LastCrawlStatusFailed {
				return oops.Errorf("crawler %s finished with failure: %s", name, aws.StringValue(lastCrawl.ErrorMessage))
			}
			slog.Infow(ctx, "crawler finished", "crawler", name)
			return nil
		}

		slog.Debugw(ctx, "crawler still busy", "crawler", name, "state", state)
		select {
		case <-ctx.Done():
			return oops.Wrapf(ctx.Err(), "waiting for crawler %s", name)
		case <-time.After(b.Duration()):
		}
	}
}

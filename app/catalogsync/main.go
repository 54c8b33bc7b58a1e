// Command catalogsync converges the Glue catalog onto the configured order
// lake layout: the database and the filtered orders table over the processed
// namespace. It is idempotent and safe to run on every deploy.
package main

import (
	"context"
	"flag"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/glue"
	"github.com/aws/aws-sdk-go/service/glue/glueiface"
	"github.com/samsarahq/go/oops"
	"go.uber.org/fx"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/ordercatalog"
	"orderlake.io/orderlake/pipelineconfig"
)

var (
	configPath = flag.String("config", "", "pipeline config file")
	dryRun     = flag.Bool("dryrun", false, "log what would change without touching the catalog")
)

func newGlueClient(config *pipelineconfig.Config) (glueiface.GlueAPI, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(config.Region)})
	if err != nil {
		return nil, oops.Wrapf(err, "creating AWS session for region %s", config.Region)
	}
	return glue.New(sess), nil
}

func main() {
	flag.Parse()
	slog.SetUpDefaultCLILogger()
	ctx := context.Background()

	if *configPath == "" {
		slog.Fatalw(ctx, "missing -config flag")
	}

	var catalog *ordercatalog.Catalog
	var config *pipelineconfig.Config
	app := fx.New(
		fx.Provide(
			func() (*pipelineconfig.Config, error) { return pipelineconfig.Load(*configPath) },
			newGlueClient,
			ordercatalog.New,
		),
		fx.Populate(&catalog, &config),
	)

	if err := app.Start(ctx); err != nil {
		slog.Fatalw(ctx, "failed to start application", "error", err)
	}

	if err := sync(ctx, catalog, config, *dryRun); err != nil {
		slog.Fatalw(ctx, "catalog sync failed", "error", err)
	}

	if err := app.Stop(ctx); err != nil {
		slog.Fatalw(ctx, "failed to stop application", "error", err)
	}
}

func sync(ctx context.Context, catalog *ordercatalog.Catalog, config *pipelineconfig.Config, dryRun bool) error {
	if dryRun {
		slog.Infow(ctx, "dry run: would ensure catalog entries",
			"database", config.Database,
			"table", config.Table,
			"location", config.ProcessedLocation(),
		)
		return nil
	}

	if err := catalog.EnsureDatabase(ctx, config.Database); err != nil {
		return oops.Wrapf(err, "ensuring database %s", config.Database)
	}
	if err := catalog.EnsureOrdersTable(ctx, config.Database, config.Table, config.ProcessedLocation()); err != nil {
		return oops.Wrapf(err, "ensuring table %s.%s", config.Database, config.Table)
	}

	slog.Infow(ctx, "catalog in sync",
		"database", config.Database,
		"table", config.Table,
		"location", config.ProcessedLocation(),
	)
	return nil
}

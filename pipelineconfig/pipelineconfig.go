// Package pipelineconfig loads and validates the orderlake pipeline
// configuration file. Configuration is JSON validated against an embedded
// schema so a bad deploy fails at startup rather than mid-invocation.
package pipelineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "embed"

	"github.com/hashicorp/go-multierror"
	"github.com/samsarahq/go/oops"
	"github.com/xeipuuv/gojsonschema"

	"orderlake.io/orderlake/lakepaths"
)

//go:embed schema.json
var configSchema []byte

// Config describes one orderlake deployment.
type Config struct {
	// Region is the AWS region everything lives in.
	Region string `json:"region"`

	// DataBucket holds both the raw and processed namespaces.
	DataBucket string `json:"dataBucket"`

	// ResultsBucket receives Athena query output. Defaults to DataBucket.
	ResultsBucket string `json:"resultsBucket"`

	// Database and Table name the Glue catalog entry for filtered orders.
	Database string `json:"database"`
	Table    string `json:"table"`

	// Crawler is the Glue crawler over the processed prefix, if one is set up.
	Crawler string `json:"crawler"`

	// LogGroup is the filter Lambda's CloudWatch log group.
	LogGroup string `json:"logGroup"`
}

// ProcessedLocation is the s3:// prefix the catalog table points at.
func (c *Config) ProcessedLocation() string {
	return fmt.Sprintf("s3://%s/%s", c.DataBucket, lakepaths.ProcessedPrefix)
}

// ResultsLocation is the s3:// prefix Athena writes query results to.
func (c *Config) ResultsLocation() string {
	bucket := c.ResultsBucket
	if bucket == "" {
		bucket = c.DataBucket
	}
	return fmt.Sprintf("s3://%s/athena-results/", bucket)
}

// Load reads, validates, and decodes the configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Wrapf(err, "unable to read config at %s", path)
	}
	return Parse(raw, path)
}

// Parse validates raw JSON against the embedded schema and decodes it.
func Parse(raw []byte, name string) (*Config, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(configSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to validate config %s", name)
	}

	if !result.Valid() {
		var errs error
		for _, resultErr := range result.Errors() {
			errs = multierror.Append(errs, errors.New(resultErr.String()))
		}
		return nil, oops.Wrapf(errs, "invalid pipeline configuration: %s", name)
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, oops.Wrapf(err, "failed to decode config %s", name)
	}
	return &config, nil
}

package pipelineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"region": "us-west-2",
	"dataBucket": "order-lake-data",
	"database": "orderlake",
	"table": "filtered_orders",
	"crawler": "orderlake-crawler",
	"logGroup": "/aws/lambda/order-filter"
}`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(validConfig), "pipeline.json")
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", config.Region)
	assert.Equal(t, "order-lake-data", config.DataBucket)
	assert.Equal(t, "orderlake", config.Database)
	assert.Equal(t, "s3://order-lake-data/processed/", config.ProcessedLocation())
	assert.Equal(t, "s3://order-lake-data/athena-results/", config.ResultsLocation())
}

func TestParseResultsBucketOverride(t *testing.T) {
	config, err := Parse([]byte(`{
		"region": "us-west-2",
		"dataBucket": "order-lake-data",
		"resultsBucket": "order-lake-results",
		"database": "orderlake",
		"table": "filtered_orders"
	}`), "pipeline.json")
	require.NoError(t, err)
	assert.Equal(t, "s3://order-lake-results/athena-results/", config.ResultsLocation())
}

func TestParseInvalid(t *testing.T) {
	testCases := map[string]struct {
		input       string
		errContains string
	}{
		"missing required fields": {
			input:       `{"region": "us-west-2"}`,
			errContains: "dataBucket",
		},
		"bad database name": {
			input: `{
				"region": "us-west-2",
				"dataBucket": "order-lake-data",
				"database": "Order-Lake",
				"table": "filtered_orders"
			}`,
			errContains: "database",
		},
		"unknown field": {
			input: `{
				"region": "us-west-2",
				"dataBucket": "order-lake-data",
				"database": "orderlake",
				"table": "filtered_orders",
				"buckets": "nope"
			}`,
			errContains: "buckets",
		},
		"not json": {
			input:       `region: us-west-2`,
			errContains: "pipeline.json",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input), "pipeline.json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "orderlake-crawler", config.Crawler)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

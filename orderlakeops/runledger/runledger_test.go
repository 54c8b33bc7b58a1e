package runledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAppendAndLatest(t *testing.T) {
	ledger, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer ledger.Close()

	started := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(Record{
		Operation:  "generate",
		StartedAt:  started,
		DurationMs: 12,
		Outcome:    "ok",
	}))
	require.NoError(t, ledger.Append(Record{
		Operation:  "upload",
		StartedAt:  started.Add(time.Minute),
		DurationMs: 450,
		Outcome:    "ok",
	}))
	require.NoError(t, ledger.Append(Record{
		Operation:  "query",
		StartedAt:  started.Add(2 * time.Minute),
		DurationMs: 3000,
		Outcome:    "error",
		Error:      "query failed: table not found",
	}))

	records, err := ledger.Latest(10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Oldest first.
	assert.Equal(t, "generate", records[0].Operation)
	assert.Equal(t, "upload", records[1].Operation)
	assert.Equal(t, "query", records[2].Operation)
	assert.Equal(t, "error", records[2].Outcome)
	assert.True(t, records[0].StartedAt.Equal(started))
}

func TestLedgerLatestHonorsLimit(t *testing.T) {
	ledger, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer ledger.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.Append(Record{
			Operation:  "upload",
			StartedAt:  time.Now().UTC(),
			DurationMs: int64(i),
			Outcome:    "ok",
		}))
	}

	records, err := ledger.Latest(2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// The two most recent runs, oldest first.
	assert.Equal(t, int64(3), records[0].DurationMs)
	assert.Equal(t, int64(4), records[1].DurationMs)
}

func TestLedgerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	ledger, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, ledger.Append(Record{Operation: "crawler-run", Outcome: "ok"}))
	require.NoError(t, ledger.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Latest(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "crawler-run", records[0].Operation)
}

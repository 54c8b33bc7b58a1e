// Package runledger keeps a local history of executed pipeline operations in
// a bolt file, so operators can see what has been run against a deployment
// from their machine.
package runledger

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/samsarahq/go/oops"
)

const runsBucket = "runs"

// Record describes one executed operation.
type Record struct {
	// Operation is the operation name, e.g. "upload".
	Operation string `json:"operation"`

	// StartedAt is when the operation began.
	StartedAt time.Time `json:"startedAt"`

	// DurationMs is how long the operation took.
	DurationMs int64 `json:"durationMs"`

	// Outcome is "ok" or "error".
	Outcome string `json:"outcome"`

	// Error carries the failure message for error outcomes.
	Error string `json:"error,omitempty"`
}

// Ledger is an append-only run history backed by a bolt file.
type Ledger struct {
	db *bolt.DB
}

// Open opens (or creates) the ledger at path, creating parent directories as
// needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, oops.Wrapf(err, "creating run ledger directory %s", dir)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, oops.Wrapf(err, "opening run ledger at %s", path)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, oops.Wrapf(err, "initializing run ledger at %s", path)
	}

	return &Ledger{db: db}, nil
}

// Close releases the underlying bolt file.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append records one run. Records are keyed by a monotonic sequence so
// iteration order is append order.
func (l *Ledger) Append(record Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return oops.Wrapf(err, "encoding run record")
	}

	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		seq, err := bucket.NextSequence()
		if err != nil {
			return oops.Wrapf(err, "allocating run sequence")
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return bucket.Put(key[:], raw)
	})
}

// Latest returns up to limit most recent records, oldest first.
func (l *Ledger) Latest(limit int) ([]Record, error) {
	var records []Record
	if err := l.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(runsBucket)).Cursor()
		for k, v := cursor.Last(); k != nil && len(records) < limit; k, v = cursor.Prev() {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return oops.Wrapf(err, "decoding run record")
			}
			records = append(records, record)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Cursor walked newest-first; flip to oldest-first for display.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

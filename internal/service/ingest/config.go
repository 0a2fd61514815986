package ingest

import "errors"

const DefaultBatchSize = 5000

var (
	ErrNoSource      = errors.New("ingest: no CSV source configured")
	ErrUnknownHeader = errors.New("ingest: CSV header has no known sale columns")
	ErrImportRunning = errors.New("ingest: an import is already running")
	ErrNotFound      = errors.New("ingest: source object not found")
)

// Config is passed to every import run.
type Config struct {
	// Source is an http(s) URL, an s3://bucket/key URI, a file:// URL or a path.
	Source string
	// BatchSize is the number of rows committed per transaction.
	BatchSize int
	// Progress, if set, receives the running inserted-row total after each
	// committed batch.
	Progress func(inserted int)
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

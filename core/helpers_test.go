package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teampulse/teampulse/schema"
)

var (
	testStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
)

// mustSnapshot builds a validated snapshot or fails the test.
func mustSnapshot(t *testing.T, start, end time.Time, records []schema.ChangeRecord) *schema.RangeSnapshot {
	t.Helper()
	snap, err := schema.NewRangeSnapshot(start, end, records)
	require.NoError(t, err)
	return snap
}

// commit is a shorthand record builder for analyzer tests.
func commit(hash, author string, ts time.Time, msg string, files ...schema.FileChange) schema.ChangeRecord {
	return schema.ChangeRecord{
		Hash:      hash,
		Author:    author,
		Timestamp: ts,
		Message:   msg,
		Files:     files,
	}
}

// change is a shorthand file-change builder.
func change(path string, added, deleted int) schema.FileChange {
	return schema.FileChange{Path: path, Added: added, Deleted: deleted}
}

package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func TestNewRangeSnapshotDerivedTotals(t *testing.T) {
	records := []ChangeRecord{
		{
			Hash: "aaa", Author: "alice", Timestamp: windowStart.Add(24 * time.Hour),
			Files: []FileChange{
				{Path: "core/engine.go", Added: 10, Deleted: 2},
				{Path: "core/stats.go", Added: 5, Deleted: 1},
			},
		},
		{
			Hash: "bbb", Author: "bob", Timestamp: windowStart.Add(48 * time.Hour),
			Files: []FileChange{
				{Path: "core/engine.go", Added: 3, Deleted: 3},
			},
		},
		{
			Hash: "ccc", Author: "alice", Timestamp: windowStart.Add(72 * time.Hour),
		},
	}

	snap, err := NewRangeSnapshot(windowStart, windowEnd, records)
	require.NoError(t, err)

	assert.Len(t, snap.Records, 3)
	assert.Equal(t, 2, snap.TotalFilesChanged)
	assert.Equal(t, 18, snap.TotalAdded)
	assert.Equal(t, 6, snap.TotalDeleted)
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, snap.CommitsByAuthor)
	assert.Equal(t, 2, snap.AuthorCount())
	assert.False(t, snap.Empty())
}

func TestNewRangeSnapshotEmptyIsValid(t *testing.T) {
	snap, err := NewRangeSnapshot(windowStart, windowEnd, nil)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.Equal(t, 0, snap.AuthorCount())
	assert.Equal(t, 0, snap.TotalFilesChanged)
}

func TestNewRangeSnapshotValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		records []ChangeRecord
	}{
		{
			name:  "start after end",
			start: windowEnd,
			end:   windowStart,
		},
		{
			name:  "record before window",
			start: windowStart,
			end:   windowEnd,
			records: []ChangeRecord{
				{Hash: "aaa", Author: "alice", Timestamp: windowStart.Add(-time.Hour)},
			},
		},
		{
			name:  "record after window",
			start: windowStart,
			end:   windowEnd,
			records: []ChangeRecord{
				{Hash: "aaa", Author: "alice", Timestamp: windowEnd.Add(time.Hour)},
			},
		},
		{
			name:  "negative line counts",
			start: windowStart,
			end:   windowEnd,
			records: []ChangeRecord{
				{
					Hash: "aaa", Author: "alice", Timestamp: windowStart,
					Files: []FileChange{{Path: "a.go", Added: -1, Deleted: 0}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRangeSnapshot(tt.start, tt.end, tt.records)
			assert.Error(t, err)
		})
	}
}

func TestNewRangeSnapshotNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	rec := ChangeRecord{Hash: "aaa", Author: "alice", Timestamp: windowStart.Add(time.Hour).In(loc)}

	snap, err := NewRangeSnapshot(windowStart.In(loc), windowEnd.In(loc), []ChangeRecord{rec})
	require.NoError(t, err)

	assert.Equal(t, time.UTC, snap.StartTime.Location())
	assert.Equal(t, time.UTC, snap.EndTime.Location())
	assert.Equal(t, time.UTC, snap.Records[0].Timestamp.Location())
}

func TestFingerprint(t *testing.T) {
	rec := ChangeRecord{Hash: "aaa", Author: "alice", Timestamp: windowStart.Add(time.Hour)}

	a, err := NewRangeSnapshot(windowStart, windowEnd, []ChangeRecord{rec})
	require.NoError(t, err)
	b, err := NewRangeSnapshot(windowStart, windowEnd, []ChangeRecord{rec})
	require.NoError(t, err)
	c, err := NewRangeSnapshot(windowStart, windowEnd, nil)
	require.NoError(t, err)
	d, err := NewRangeSnapshot(windowStart, windowEnd.Add(time.Hour), nil)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, c.Fingerprint(), d.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64) // hex-encoded sha256
}

func TestHealthBucketForScore(t *testing.T) {
	tests := []struct {
		score  float64
		bucket HealthBucket
	}{
		{100, HealthExcellent},
		{90, HealthExcellent},
		{89.99, HealthGood},
		{75, HealthGood},
		{74.5, HealthFair},
		{60, HealthFair},
		{59.9, HealthPoor},
		{40, HealthPoor},
		{39.9, HealthCritical},
		{0, HealthCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.bucket, HealthBucketForScore(tt.score), "score %.2f", tt.score)
	}
}

func TestDegraded(t *testing.T) {
	ok := AnalyticsResult{
		Temporal:      TemporalSection{Status: SectionOK},
		Collaboration: CollaborationSection{Status: SectionOK},
		Quality:       QualitySection{Status: SectionOK},
	}
	assert.False(t, ok.Degraded())

	partial := ok
	partial.Collaboration = CollaborationSection{Status: SectionFailed, Error: "boom"}
	assert.True(t, partial.Degraded())
}

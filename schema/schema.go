// Package schema has the data model, configs and constants for all parts of teampulse.
package schema

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// FileChange records the line-level delta for a single file within one commit.
// It is owned by the ChangeRecord that contains it and is never mutated.
type FileChange struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
}

// ChangeRecord is one commit from the repository history: author identity,
// UTC timestamp, short message and the ordered list of file changes.
// Records are produced by the history collector and read-only afterwards.
type ChangeRecord struct {
	Hash      string       `json:"hash"`
	Author    string       `json:"author"`
	Timestamp time.Time    `json:"timestamp"`
	Message   string       `json:"message"`
	Files     []FileChange `json:"files"`
}

// RangeSnapshot is the bounded, chronological set of change records under
// analysis, plus derived totals. Build it with NewRangeSnapshot so that the
// invariants (start <= end, non-negative line counts, records within bounds,
// UTC timestamps) hold before any analyzer sees the data.
type RangeSnapshot struct {
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Records   []ChangeRecord `json:"records"`

	TotalFilesChanged int            `json:"total_files_changed"`
	TotalAdded        int            `json:"total_added"`
	TotalDeleted      int            `json:"total_deleted"`
	CommitsByAuthor   map[string]int `json:"commits_by_author"`
}

// NewRangeSnapshot validates the inputs and computes the derived totals.
// An empty record list is valid; malformed bounds or negative line counts
// are rejected here so they never reach the analyzers.
func NewRangeSnapshot(start, end time.Time, records []ChangeRecord) (*RangeSnapshot, error) {
	start = start.UTC()
	end = end.UTC()
	if start.After(end) {
		return nil, fmt.Errorf("snapshot start time (%s) is after end time (%s)", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	snap := &RangeSnapshot{
		StartTime:       start,
		EndTime:         end,
		Records:         make([]ChangeRecord, 0, len(records)),
		CommitsByAuthor: make(map[string]int),
	}

	seenFiles := make(map[string]struct{})
	for _, rec := range records {
		rec.Timestamp = rec.Timestamp.UTC()
		if rec.Timestamp.Before(start) || rec.Timestamp.After(end) {
			return nil, fmt.Errorf("commit %s timestamp %s is outside the snapshot window", rec.Hash, rec.Timestamp.Format(time.RFC3339))
		}
		for _, fc := range rec.Files {
			if fc.Added < 0 || fc.Deleted < 0 {
				return nil, fmt.Errorf("commit %s has negative line counts for %s", rec.Hash, fc.Path)
			}
			seenFiles[fc.Path] = struct{}{}
			snap.TotalAdded += fc.Added
			snap.TotalDeleted += fc.Deleted
		}
		snap.CommitsByAuthor[rec.Author]++
		snap.Records = append(snap.Records, rec)
	}
	snap.TotalFilesChanged = len(seenFiles)

	return snap, nil
}

// Fingerprint derives the cache key for this snapshot from the record count
// and the window bounds. Two snapshots with equal count and bounds but
// different content collide; this is an accepted trade-off for fast
// repeat-query caching and is documented as such.
func (s *RangeSnapshot) Fingerprint() string {
	key := fmt.Sprintf("%d:%d:%d", len(s.Records), s.StartTime.Unix(), s.EndTime.Unix())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// AuthorCount returns the number of distinct authors in the snapshot.
func (s *RangeSnapshot) AuthorCount() int {
	return len(s.CommitsByAuthor)
}

// Empty reports whether the snapshot holds no records.
func (s *RangeSnapshot) Empty() bool {
	return len(s.Records) == 0
}

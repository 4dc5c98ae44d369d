// Package parquet exports analysis data to Parquet files using
// github.com/parquet-go/parquet-go, for downstream warehouse ingestion.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/teampulse/teampulse/schema"
)

// HotspotRow is one high-churn file in an analysis window, flattened for
// columnar export.
type HotspotRow struct {
	// Fingerprint identifies the snapshot the row was computed from
	Fingerprint string `parquet:"fingerprint,snappy"`

	// WindowStart and WindowEnd bound the analysis window
	WindowStart time.Time `parquet:"window_start,snappy"`
	WindowEnd   time.Time `parquet:"window_end,snappy"`

	// FilePath is the repository-relative path
	FilePath string `parquet:"file_path,snappy"`

	// Churn is lines added plus deleted across the window
	Churn int32 `parquet:"churn,snappy"`

	// Commits is the number of commits touching the file
	Commits int32 `parquet:"commits,snappy"`

	// AuthorCount is the number of distinct authors touching the file
	AuthorCount int32 `parquet:"author_count,snappy"`

	// Hotspot marks rows that are both high-churn and multi-author
	Hotspot bool `parquet:"hotspot,snappy"`
}

// RunRow is one persisted run summary, flattened for columnar export.
type RunRow struct {
	RunID        int64     `parquet:"run_id,snappy"`
	RepoPath     string    `parquet:"repo_path,snappy"`
	Fingerprint  string    `parquet:"fingerprint,snappy"`
	StartedAt    time.Time `parquet:"started_at,snappy"`
	FinishedAt   time.Time `parquet:"finished_at,snappy"`
	WindowStart  time.Time `parquet:"window_start,snappy"`
	WindowEnd    time.Time `parquet:"window_end,snappy"`
	CommitCount  int32     `parquet:"commit_count,snappy"`
	AuthorCount  int32     `parquet:"author_count,snappy"`
	HealthScore  float64   `parquet:"health_score,snappy"`
	HealthBucket string    `parquet:"health_bucket,snappy"`
	Degraded     bool      `parquet:"degraded,snappy"`
}

// WriteHotspotRows writes the quality section's file-level rows to w.
// High-churn files come first; hotspot membership is marked per row.
func WriteHotspotRows(w io.Writer, result *schema.AnalyticsResult, snap *schema.RangeSnapshot) error {
	if result.Quality.Insights == nil {
		return fmt.Errorf("quality section unavailable: %s", result.Quality.Error)
	}
	ins := result.Quality.Insights

	hotspotPaths := make(map[string]struct{}, len(ins.Hotspots))
	for _, h := range ins.Hotspots {
		hotspotPaths[h.Path] = struct{}{}
	}

	rows := make([]HotspotRow, 0, len(ins.HighChurnFiles))
	for _, f := range ins.HighChurnFiles {
		_, isHotspot := hotspotPaths[f.Path]
		rows = append(rows, HotspotRow{
			Fingerprint: result.Fingerprint,
			WindowStart: snap.StartTime,
			WindowEnd:   snap.EndTime,
			FilePath:    f.Path,
			Churn:       int32(f.Churn),
			Commits:     int32(f.Commits),
			AuthorCount: int32(f.Authors),
			Hotspot:     isHotspot,
		})
	}
	return writeRows(w, rows)
}

// WriteRunRows writes run summaries to w.
func WriteRunRows(w io.Writer, runs []schema.RunSummary) error {
	rows := make([]RunRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, RunRow{
			RunID:        r.ID,
			RepoPath:     r.RepoPath,
			Fingerprint:  r.Fingerprint,
			StartedAt:    r.StartedAt,
			FinishedAt:   r.FinishedAt,
			WindowStart:  r.WindowStart,
			WindowEnd:    r.WindowEnd,
			CommitCount:  int32(r.CommitCount),
			AuthorCount:  int32(r.AuthorCount),
			HealthScore:  r.HealthScore,
			HealthBucket: string(r.HealthBucket),
			Degraded:     r.Degraded,
		})
	}
	return writeRows(w, rows)
}

// writeRows writes any row type through a generic writer with schema
// inference from struct tags.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

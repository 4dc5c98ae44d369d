package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/internal/parquet"
	"github.com/teampulse/teampulse/schema"
)

// PrintReport outputs the full composite result, dispatching on the
// configured output format. JSON carries the whole result; CSV and parquet
// flatten to the quality section's file rows.
func PrintReport(result *schema.AnalyticsResult, snap *schema.RangeSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQualityCSV(w, result.Quality)
		}, "CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteHotspotRows(w, result, snap)
		}, "parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, result, snap, cfg, duration)
		}, "table")
	}
}

// writeReportText renders all three sections with a shared header and footer.
func writeReportText(w io.Writer, result *schema.AnalyticsResult, snap *schema.RangeSnapshot, cfg *contract.Config, duration time.Duration) error {
	cached := ""
	if result.FromCache {
		cached = " (cached)"
	}
	if _, err := fmt.Fprintf(w, "Team report for %s%s\n", cfg.RepoPath, cached); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Window: %s to %s | Commits: %d | Authors: %d\n",
		displayTime(cfg, snap.StartTime, time.DateOnly),
		displayTime(cfg, snap.EndTime, time.DateOnly),
		len(snap.Records), snap.AuthorCount()); err != nil {
		return err
	}

	if err := writeTemporalSection(w, result.Temporal, cfg); err != nil {
		return err
	}
	if err := writeCollaborationSection(w, result.Collaboration, cfg); err != nil {
		return err
	}
	if err := writeQualitySection(w, result.Quality, cfg); err != nil {
		return err
	}

	if result.Degraded() {
		if _, err := fmt.Fprintln(w, "Note: one or more sections failed; the report above is partial"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Run backend: %s\n", duration, cfg.RunBackend)
	return err
}

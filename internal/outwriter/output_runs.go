package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/internal/parquet"
	"github.com/teampulse/teampulse/schema"
)

// PrintRuns outputs the persisted run history, newest first.
func PrintRuns(runs []schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs, cfg)
		}, "CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRunRows(w, runs)
		}, "parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs, cfg, duration)
		}, "table")
	}
}

// writeRunsCSV emits one row per run.
func writeRunsCSV(w io.Writer, runs []schema.RunSummary, cfg *contract.Config) error {
	header := []string{"id", "started_at", "window_start", "window_end", "commits", "authors", "health_score", "health_bucket", "degraded"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runs {
			rec := []string{
				strconv.FormatInt(r.ID, 10),
				displayTime(cfg, r.StartedAt, contract.DateTimeFormat),
				displayTime(cfg, r.WindowStart, time.DateOnly),
				displayTime(cfg, r.WindowEnd, time.DateOnly),
				strconv.Itoa(r.CommitCount),
				strconv.Itoa(r.AuthorCount),
				fmtFloat(r.HealthScore),
				string(r.HealthBucket),
				strconv.FormatBool(r.Degraded),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRunsTable renders the human-readable run history.
func writeRunsTable(w io.Writer, runs []schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Started", "Window", "Commits", "Authors", "Health", "Bucket"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		bucket := string(r.HealthBucket)
		if cfg.UseColors {
			bucket = contract.HealthColorLabel(r.HealthBucket)
		}
		if r.Degraded {
			bucket += " (partial)"
		}
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			displayTime(cfg, r.StartedAt, "2006-01-02 15:04"),
			fmt.Sprintf("%s..%s", displayTime(cfg, r.WindowStart, time.DateOnly), displayTime(cfg, r.WindowEnd, time.DateOnly)),
			strconv.Itoa(r.CommitCount),
			strconv.Itoa(r.AuthorCount),
			fmtFloat(r.HealthScore),
			bucket,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d run(s) in %v\n", len(runs), duration)
	return err
}

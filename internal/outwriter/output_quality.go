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

// PrintQuality outputs the quality section, dispatching on the configured
// output format.
func PrintQuality(result *schema.AnalyticsResult, snap *schema.RangeSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result.Quality)
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
			if err := writeQualitySection(w, result.Quality, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v over %d commits\n", duration, len(snap.Records))
			return err
		}, "table")
	}
}

// writeQualityCSV emits the high-churn files, one row per file.
func writeQualityCSV(w io.Writer, sec schema.QualitySection) error {
	if sec.Status == schema.SectionFailed {
		return fmt.Errorf("quality section unavailable: %s", sec.Error)
	}
	header := []string{"rank", "file", "churn", "commits", "authors"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range sec.Insights.HighChurnFiles {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Path,
				strconv.Itoa(f.Churn),
				strconv.Itoa(f.Commits),
				strconv.Itoa(f.Authors),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeQualitySection renders the human-readable quality report.
func writeQualitySection(w io.Writer, sec schema.QualitySection, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "== Quality =="); err != nil {
		return err
	}
	if sec.Status == schema.SectionFailed {
		_, err := fmt.Fprintf(w, "Section failed: %s\n", sec.Error)
		return err
	}
	ins := sec.Insights

	if _, err := fmt.Fprintf(w, "High churn: %d of %d files at or above cutoff %s | Complexity trend: %s\n",
		len(ins.HighChurnFiles), ins.TotalFiles, fmtFloat(ins.ChurnCutoff), ins.ComplexityTrend); err != nil {
		return err
	}

	if len(ins.Hotspots) > 0 {
		maxPath := GetMaxTablePathWidth(cfg)
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Path", "Churn", "Commits", "Authors"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for i, f := range ins.Hotspots {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				truncatePath(f.Path, maxPath),
				strconv.Itoa(f.Churn),
				strconv.Itoa(f.Commits),
				strconv.Itoa(f.Authors),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(ins.LargeChanges) > 0 {
		if _, err := fmt.Fprintf(w, "Large changes: %d (density %s)\n",
			len(ins.LargeChanges), fmtPct(ins.LargeDensity)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Commit", "Files", "Corrective", "Message"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, lc := range ins.LargeChanges {
			data = append(data, []string{
				shortHash(lc.Hash),
				strconv.Itoa(lc.Files),
				strconv.FormatBool(lc.Corrective),
				firstLine(lc.Message, 50),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	bucket := string(ins.HealthBucket)
	if cfg.UseColors {
		bucket = contract.HealthColorLabel(ins.HealthBucket)
	}
	risk := contract.RiskPlainLabel(ins.Risk)
	if cfg.UseColors {
		risk = contract.RiskColorLabel(ins.Risk)
	}
	_, err := fmt.Fprintf(w, "Health: %s/100 (%s), risk %s\n", fmtFloat(ins.HealthScore), bucket, risk)
	return err
}

// shortHash abbreviates a commit hash for table display.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// firstLine returns the first line of a message, truncated to max runes.
func firstLine(msg string, max int) string {
	for i, r := range msg {
		if r == '\n' {
			msg = msg[:i]
			break
		}
	}
	runes := []rune(msg)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return msg
}

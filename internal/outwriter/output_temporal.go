package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/schema"
)

// PrintTemporal outputs the temporal section, dispatching on the configured
// output format.
func PrintTemporal(result *schema.AnalyticsResult, snap *schema.RangeSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result.Temporal)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTemporalCSV(w, result.Temporal, cfg)
		}, "CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is supported by the report, quality and runs commands only")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeTemporalSection(w, result.Temporal, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v over %d commits\n", duration, len(snap.Records))
			return err
		}, "table")
	}
}

// writeTemporalCSV emits the smoothing input: one row per day in the window.
func writeTemporalCSV(w io.Writer, sec schema.TemporalSection, cfg *contract.Config) error {
	if sec.Status == schema.SectionFailed {
		return fmt.Errorf("temporal section unavailable: %s", sec.Error)
	}
	return writeCSVWithHeader(w, []string{"day", "commits"}, func(cw *csv.Writer) error {
		for _, d := range sec.Insights.Velocity.DailyCommits {
			rec := []string{
				displayTime(cfg, d.Day, time.DateOnly),
				strconv.Itoa(d.Commits),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTemporalSection renders the human-readable temporal report.
func writeTemporalSection(w io.Writer, sec schema.TemporalSection, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "== Temporal =="); err != nil {
		return err
	}
	if sec.Status == schema.SectionFailed {
		_, err := fmt.Fprintf(w, "Section failed: %s\n", sec.Error)
		return err
	}
	ins := sec.Insights

	v := ins.Velocity
	if _, err := fmt.Fprintf(w, "Velocity: %s (first third %s/day, last third %s/day, change %+.1f%%)\n",
		v.Direction, fmtFloat(v.FirstThirdMean), fmtFloat(v.LastThirdMean), v.ChangePct); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Peak hours (UTC): %s | Peak days: %s\n",
		formatHours(ins.Heatmap.PeakHours), formatDays(ins.Heatmap.PeakDays)); err != nil {
		return err
	}

	if len(ins.PeakPeriods) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Start", "End", "Days", "Commits", "Intensity"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, p := range ins.PeakPeriods {
			data = append(data, []string{
				displayTime(cfg, p.Start, time.DateOnly),
				displayTime(cfg, p.End, time.DateOnly),
				strconv.Itoa(p.Days),
				strconv.Itoa(p.Commits),
				fmtFloat(p.Intensity) + "x",
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	bf := ins.BusFactor
	risk := contract.RiskPlainLabel(bf.Risk)
	if cfg.UseColors {
		risk = contract.RiskColorLabel(bf.Risk)
	}
	if _, err := fmt.Fprintf(w, "Bus factor: %d author(s) cover %s of commits, risk %s\n",
		bf.AuthorCount, fmtPct(bf.Coverage), risk); err != nil {
		return err
	}

	if len(bf.TopAuthors) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Author", "Commits", "Share"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, a := range bf.TopAuthors {
			data = append(data, []string{a.Author, strconv.Itoa(a.Commits), fmtPct(a.Share)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// formatHours joins peak hours as "09:00, 14:00".
func formatHours(hours []int) string {
	if len(hours) == 0 {
		return "none"
	}
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, ", ")
}

// formatDays joins peak day names.
func formatDays(days []string) string {
	if len(days) == 0 {
		return "none"
	}
	return strings.Join(days, ", ")
}

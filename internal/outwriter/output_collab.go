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
	"github.com/teampulse/teampulse/schema"
)

// PrintCollaboration outputs the collaboration section, dispatching on the
// configured output format.
func PrintCollaboration(result *schema.AnalyticsResult, snap *schema.RangeSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result.Collaboration)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCollaborationCSV(w, result.Collaboration)
		}, "CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is supported by the report, quality and runs commands only")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeCollaborationSection(w, result.Collaboration, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analysis completed in %v over %d commits\n", duration, len(snap.Records))
			return err
		}, "table")
	}
}

// writeCollaborationCSV emits the top pairs, one row per pair.
func writeCollaborationCSV(w io.Writer, sec schema.CollaborationSection) error {
	if sec.Status == schema.SectionFailed {
		return fmt.Errorf("collaboration section unavailable: %s", sec.Error)
	}
	return writeCSVWithHeader(w, []string{"author_a", "author_b", "shared_files", "strength"}, func(cw *csv.Writer) error {
		for _, p := range sec.Insights.TopPairs {
			rec := []string{p.AuthorA, p.AuthorB, strconv.Itoa(p.SharedFiles), fmtFloat(p.Strength)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCollaborationSection renders the human-readable collaboration report.
func writeCollaborationSection(w io.Writer, sec schema.CollaborationSection, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "== Collaboration =="); err != nil {
		return err
	}
	if sec.Status == schema.SectionFailed {
		_, err := fmt.Fprintf(w, "Section failed: %s\n", sec.Error)
		return err
	}
	ins := sec.Insights

	if len(ins.TopPairs) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Author A", "Author B", "Shared", "Strength"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, p := range ins.TopPairs {
			data = append(data, []string{p.AuthorA, p.AuthorB, strconv.Itoa(p.SharedFiles), fmtFloat(p.Strength)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "No collaborating pairs in the window"); err != nil {
		return err
	}

	if len(ins.Silos) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Category", "Owner", "Share", "Touches"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, s := range ins.Silos {
			data = append(data, []string{s.Category, s.Owner, fmtPct(s.Share), strconv.Itoa(s.Touches)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Review coverage (trailer proxy): %s (%d commits)\n",
		fmtPct(ins.ReviewCoverage), ins.ReviewedCommits); err != nil {
		return err
	}

	risk := contract.RiskPlainLabel(ins.KnowledgeRisk)
	if cfg.UseColors {
		risk = contract.RiskColorLabel(ins.KnowledgeRisk)
	}
	_, err := fmt.Fprintf(w, "Connectivity: %s | Balance: %s | Knowledge risk: %s (%d silo(s) across %d categories)\n",
		fmtFloat(ins.Connectivity), fmtFloat(ins.Balance), risk, len(ins.Silos), ins.CategoryCount)
	return err
}

// Package history collects commit records from a repository and assembles
// the validated snapshot the analyzers run on.
package history

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/schema"
)

// Collector reads commit history through a GitClient and produces snapshots.
type Collector struct {
	client contract.GitClient
}

// NewCollector creates a collector backed by the given Git client.
func NewCollector(client contract.GitClient) *Collector {
	return &Collector{client: client}
}

// CollectSnapshot runs one repository-wide git log over the window and
// assembles the validated snapshot. Commits whose timestamps fall outside
// the window (git's --since/--until are approximate around timezone edges)
// are dropped rather than failing validation. When the history exceeds
// maxCommits only the most recent commits are kept.
func (c *Collector) CollectSnapshot(ctx context.Context, repoPath string, startTime, endTime time.Time, maxCommits int) (*schema.RangeSnapshot, error) {
	out, err := c.client.GetCommitLog(ctx, repoPath, startTime, endTime)
	if err != nil {
		return nil, err
	}

	records := ParseCommitLog(out)

	start := startTime.UTC()
	end := endTime.UTC()
	inWindow := records[:0]
	for _, rec := range records {
		ts := rec.Timestamp.UTC()
		if ts.Before(start) || ts.After(end) {
			continue
		}
		inWindow = append(inWindow, rec)
	}
	records = inWindow

	// git log emits newest first, so truncation keeps the most recent.
	if maxCommits > 0 && len(records) > maxCommits {
		records = records[:maxCommits]
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	snap, err := schema.NewRangeSnapshot(start, end, records)
	if err != nil {
		return nil, fmt.Errorf("assemble snapshot for %s: %w", repoPath, err)
	}
	return snap, nil
}

// ParseCommitLog parses raw log output into change records. Each record is
// one commit: header fields, full message and the numstat lines that follow.
// Malformed records are skipped.
func ParseCommitLog(out []byte) []schema.ChangeRecord {
	var records []schema.ChangeRecord
	for _, chunk := range strings.Split(string(out), contract.CommitSeparator) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		rec, ok := parseCommitChunk(chunk)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

// parseCommitChunk splits one record into hash, author, date, message and
// file stats.
func parseCommitChunk(chunk string) (schema.ChangeRecord, bool) {
	parts := strings.SplitN(chunk, contract.FieldSeparator, 5)
	if len(parts) < 5 {
		return schema.ChangeRecord{}, false
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[2]))
	if err != nil {
		return schema.ChangeRecord{}, false
	}

	return schema.ChangeRecord{
		Hash:      strings.TrimSpace(parts[0]),
		Author:    strings.TrimSpace(parts[1]),
		Timestamp: ts.UTC(),
		Message:   strings.TrimSpace(parts[3]),
		Files:     parseFileStats(parts[4]),
	}, true
}

// parseFileStats parses the numstat block: one "added<TAB>deleted<TAB>path"
// line per file. Binary files report "-" counts, which read as 0.
func parseFileStats(block string) []schema.FileChange {
	var files []schema.FileChange
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		files = append(files, schema.FileChange{
			Path:    normalizeRename(parts[2]),
			Added:   parseStatValue(parts[0]),
			Deleted: parseStatValue(parts[1]),
		})
	}
	return files
}

// parseStatValue converts a numstat count to int, handling "-" as 0.
func parseStatValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// normalizeRename resolves git's rename notations ("old => new" and
// "prefix{old => new}suffix") to the post-rename path so churn accrues
// against the file that still exists.
func normalizeRename(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}

	if !strings.Contains(path, "{") {
		parts := strings.SplitN(path, " => ", 2)
		return parts[1]
	}

	braceStart := strings.Index(path, "{")
	braceEnd := strings.Index(path, "}")
	if braceStart == -1 || braceEnd == -1 || braceStart >= braceEnd {
		return path
	}

	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]
	if !strings.Contains(renamePart, " => ") {
		return path
	}
	renameParts := strings.SplitN(renamePart, " => ", 2)

	newPath := prefix + renameParts[1] + suffix
	return strings.ReplaceAll(newPath, "//", "/")
}

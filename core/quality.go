package core

import (
	"regexp"
	"sort"
	"time"

	"github.com/teampulse/teampulse/schema"
)

// correctiveRe tags commit messages that look like bug-fix work. Used to
// separate potential corrective changes from ordinary large changes.
var correctiveRe = regexp.MustCompile(`(?i)\b(fix|fixes|fixed|bug|patch|hotfix)\b`)

// analyzeQuality computes churn metrics, the complexity-trend proxy,
// large-change detection, hotspot files and the aggregate health rating.
// Pure function of the snapshot and config; an empty snapshot rates as a
// perfectly healthy window by convention.
func analyzeQuality(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) *schema.QualityInsights {
	ins := &schema.QualityInsights{
		ComplexityTrend: schema.TrendStable,
		HealthScore:     100,
		HealthBucket:    schema.HealthExcellent,
		Risk:            schema.RiskLow,
	}
	if snap.Empty() {
		return ins
	}

	churns := computeFileChurn(snap)
	ins.TotalFiles = len(churns)
	ins.HighChurnFiles, ins.ChurnCutoff = computeHighChurn(churns, cfg.ChurnPercentile)
	ins.ComplexityTrend = computeComplexityTrend(snap)
	ins.LargeChanges = computeLargeChanges(snap, cfg.LargeChangeFiles)
	ins.LargeDensity = float64(len(ins.LargeChanges)) / float64(len(snap.Records))
	ins.Hotspots = computeHotspots(ins.HighChurnFiles, cfg.HotspotLimit)

	ins.HealthScore = computeHealthScore(snap, ins, cfg)
	ins.HealthBucket = schema.HealthBucketForScore(ins.HealthScore)
	ins.Risk = riskForBucket(ins.HealthBucket)
	return ins
}

// computeFileChurn sums lines added+deleted per file across the window and
// tracks commit and distinct-author counts per file.
func computeFileChurn(snap *schema.RangeSnapshot) []schema.FileChurn {
	type agg struct {
		churn   int
		commits int
		authors map[string]struct{}
	}
	byPath := make(map[string]*agg)
	for _, rec := range snap.Records {
		for _, fc := range rec.Files {
			a := byPath[fc.Path]
			if a == nil {
				a = &agg{authors: make(map[string]struct{})}
				byPath[fc.Path] = a
			}
			a.churn += fc.Added + fc.Deleted
			a.commits++
			a.authors[rec.Author] = struct{}{}
		}
	}

	churns := make([]schema.FileChurn, 0, len(byPath))
	for path, a := range byPath {
		churns = append(churns, schema.FileChurn{
			Path:    path,
			Churn:   a.churn,
			Commits: a.commits,
			Authors: len(a.authors),
		})
	}
	sort.Slice(churns, func(i, j int) bool {
		if churns[i].Churn != churns[j].Churn {
			return churns[i].Churn > churns[j].Churn
		}
		return churns[i].Path < churns[j].Path
	})
	return churns
}

// computeHighChurn returns the files at or above the configured percentile
// of the churn distribution, plus the cutoff value itself. Zero-churn files
// never qualify.
func computeHighChurn(churns []schema.FileChurn, pct float64) ([]schema.FileChurn, float64) {
	if len(churns) == 0 {
		return nil, 0
	}
	values := make([]float64, len(churns))
	for i, c := range churns {
		values[i] = float64(c.Churn)
	}
	cutoff := percentile(values, pct)

	var high []schema.FileChurn
	for _, c := range churns {
		if c.Churn > 0 && float64(c.Churn) >= cutoff {
			high = append(high, c)
		}
	}
	return high, cutoff
}

// computeComplexityTrend is a proxy signal: average lines changed per commit
// over successive weekly buckets, classified with the same dead-zone
// comparison as the velocity trend. Buckets without commits are skipped so
// sparse windows do not fabricate swings.
func computeComplexityTrend(snap *schema.RangeSnapshot) schema.TrendDirection {
	bucketWidth := time.Duration(schema.DefaultComplexityBucketDay) * 24 * time.Hour

	type bucket struct {
		lines   int
		commits int
	}
	buckets := make(map[int]*bucket)
	maxIdx := 0
	for _, rec := range snap.Records {
		idx := int(rec.Timestamp.Sub(snap.StartTime) / bucketWidth)
		b := buckets[idx]
		if b == nil {
			b = &bucket{}
			buckets[idx] = b
		}
		for _, fc := range rec.Files {
			b.lines += fc.Added + fc.Deleted
		}
		b.commits++
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	var series []float64
	for idx := 0; idx <= maxIdx; idx++ {
		if b, ok := buckets[idx]; ok && b.commits > 0 {
			series = append(series, float64(b.lines)/float64(b.commits))
		}
	}
	direction, _, _, _ := classifyTrend(series)
	return direction
}

// computeLargeChanges flags records whose file count strictly exceeds the
// threshold, tagging likely corrective work via message keywords.
func computeLargeChanges(snap *schema.RangeSnapshot, threshold int) []schema.LargeChange {
	var large []schema.LargeChange
	for _, rec := range snap.Records {
		if len(rec.Files) > threshold {
			large = append(large, schema.LargeChange{
				Hash:       rec.Hash,
				Files:      len(rec.Files),
				Message:    rec.Message,
				Corrective: correctiveRe.MatchString(rec.Message),
			})
		}
	}
	return large
}

// computeHotspots keeps the high-churn files touched by more than one
// author. The input is already ranked by churn descending.
func computeHotspots(highChurn []schema.FileChurn, limit int) []schema.FileChurn {
	var hotspots []schema.FileChurn
	for _, c := range highChurn {
		if c.Authors > 1 {
			hotspots = append(hotspots, c)
		}
	}
	if len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}
	return hotspots
}

// computeHealthScore combines bus-factor risk, high-churn concentration and
// large-change density into a bounded 0-100 score using the documented
// weights. The bus factor is recomputed locally from the snapshot so the
// analyzer stays independent of the temporal section.
func computeHealthScore(snap *schema.RangeSnapshot, ins *schema.QualityInsights, cfg schema.AnalyzerConfig) float64 {
	busPenalty := 0.0
	switch computeBusFactor(snap, cfg).Risk {
	case schema.RiskHigh:
		busPenalty = 1.0
	case schema.RiskMedium:
		busPenalty = 0.5
	}

	churnPenalty := 0.0
	if ins.TotalFiles > 0 {
		fraction := float64(len(ins.HighChurnFiles)) / float64(ins.TotalFiles)
		switch {
		case fraction > schema.ChurnRiskHighRatio:
			churnPenalty = 1.0
		case fraction > schema.ChurnRiskMediumRatio:
			churnPenalty = 0.5
		}
	}

	largePenalty := clamp01(ins.LargeDensity / schema.LargeChangeDensityCap)

	score := 100 -
		schema.HealthBusWeight*busPenalty -
		schema.HealthChurnWeight*churnPenalty -
		schema.HealthLargeWeight*largePenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// riskForBucket folds the health bucket into the coarse risk grade.
func riskForBucket(bucket schema.HealthBucket) schema.RiskLevel {
	switch bucket {
	case schema.HealthPoor, schema.HealthCritical:
		return schema.RiskHigh
	case schema.HealthFair:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

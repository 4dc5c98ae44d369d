package core

import (
	"sort"
	"time"

	"github.com/teampulse/teampulse/schema"
)

// analyzeTemporal computes velocity trend, activity heatmap, peak periods
// and bus factor from the snapshot's time and authorship dimensions. It is a
// pure function of the snapshot and config; an empty snapshot yields neutral
// defaults without error.
func analyzeTemporal(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) *schema.TemporalInsights {
	daily := dailyCommitSeries(snap)

	return &schema.TemporalInsights{
		Velocity:    computeVelocityTrend(daily, cfg.VelocityWindowDays),
		Heatmap:     computeHeatmap(snap),
		PeakPeriods: computePeakPeriods(daily, cfg.PeakThreshold),
		BusFactor:   computeBusFactor(snap, cfg),
	}
}

// dailyCommitSeries buckets records into UTC-day commit counts covering every
// day of the snapshot window, including zero-activity days.
func dailyCommitSeries(snap *schema.RangeSnapshot) []schema.DayCount {
	if snap.Empty() {
		return nil
	}

	startDay := snap.StartTime.Truncate(24 * time.Hour)
	endDay := snap.EndTime.Truncate(24 * time.Hour)

	counts := make(map[time.Time]int)
	for _, rec := range snap.Records {
		counts[rec.Timestamp.Truncate(24*time.Hour)]++
	}

	var series []schema.DayCount
	for day := startDay; !day.After(endDay); day = day.Add(24 * time.Hour) {
		series = append(series, schema.DayCount{Day: day, Commits: counts[day]})
	}
	return series
}

// computeVelocityTrend smooths the daily counts with a rolling average and
// classifies the overall direction by comparing the first and last thirds.
func computeVelocityTrend(daily []schema.DayCount, windowDays int) schema.VelocityTrend {
	trend := schema.VelocityTrend{
		Direction:    schema.TrendStable,
		WindowDays:   windowDays,
		DailyCommits: daily,
	}
	if len(daily) == 0 {
		return trend
	}

	counts := make([]float64, len(daily))
	for i, d := range daily {
		counts[i] = float64(d.Commits)
	}
	rolled := rollingAverage(counts, windowDays)

	direction, first, last, change := classifyTrend(rolled)
	trend.Direction = direction
	trend.FirstThirdMean = first
	trend.LastThirdMean = last
	trend.ChangePct = change * 100
	return trend
}

// computeHeatmap builds the hour-of-day and day-of-week frequency tables in
// one pass and marks the entries at or above the 90th percentile of each
// table as peaks, ties included. Zero-count entries never qualify.
func computeHeatmap(snap *schema.RangeSnapshot) schema.Heatmap {
	var hm schema.Heatmap
	if snap.Empty() {
		return hm
	}

	for _, rec := range snap.Records {
		hm.ByHour[rec.Timestamp.Hour()]++
		hm.ByWeekday[int(rec.Timestamp.Weekday())]++
	}

	hourCounts := make([]float64, 24)
	for i, c := range hm.ByHour {
		hourCounts[i] = float64(c)
	}
	hourCut := percentile(hourCounts, 0.9)
	for h, c := range hm.ByHour {
		if c > 0 && float64(c) >= hourCut {
			hm.PeakHours = append(hm.PeakHours, h)
		}
	}

	dayCounts := make([]float64, 7)
	for i, c := range hm.ByWeekday {
		dayCounts[i] = float64(c)
	}
	dayCut := percentile(dayCounts, 0.9)
	for d, c := range hm.ByWeekday {
		if c > 0 && float64(c) >= dayCut {
			hm.PeakDays = append(hm.PeakDays, time.Weekday(d).String())
		}
	}

	return hm
}

// computePeakPeriods finds contiguous runs of days whose commit count is at
// or above mean + threshold*stddev of the daily series. The boundary is
// inclusive; adjacent qualifying days merge into one period.
func computePeakPeriods(daily []schema.DayCount, threshold float64) []schema.PeakPeriod {
	if len(daily) == 0 {
		return nil
	}

	counts := make([]float64, len(daily))
	for i, d := range daily {
		counts[i] = float64(d.Commits)
	}
	overall := mean(counts)
	if overall == 0 {
		return nil
	}
	cutoff := overall + threshold*stddev(counts)

	var periods []schema.PeakPeriod
	var current *schema.PeakPeriod
	for i, d := range daily {
		qualifies := d.Commits > 0 && float64(d.Commits) >= cutoff
		if qualifies {
			if current == nil {
				current = &schema.PeakPeriod{Start: d.Day}
			}
			current.End = d.Day
			current.Days++
			current.Commits += d.Commits
		}
		if current != nil && (!qualifies || i == len(daily)-1) {
			current.Intensity = (float64(current.Commits) / float64(current.Days)) / overall
			periods = append(periods, *current)
			current = nil
		}
	}
	return periods
}

// computeBusFactor sorts authors by commit count descending and accumulates
// until the cumulative share reaches the coverage threshold. The risk label
// follows the configured author-count cutoffs; a single-author history is
// always high risk, and an empty snapshot reports zero coverage with the
// lowest severity by convention.
func computeBusFactor(snap *schema.RangeSnapshot, cfg schema.AnalyzerConfig) schema.BusFactor {
	bf := schema.BusFactor{Risk: schema.RiskLow}
	total := len(snap.Records)
	if total == 0 || len(snap.CommitsByAuthor) == 0 {
		return bf
	}

	shares := make([]schema.AuthorShare, 0, len(snap.CommitsByAuthor))
	for author, commits := range snap.CommitsByAuthor {
		shares = append(shares, schema.AuthorShare{
			Author:  author,
			Commits: commits,
			Share:   float64(commits) / float64(total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Commits != shares[j].Commits {
			return shares[i].Commits > shares[j].Commits
		}
		return shares[i].Author < shares[j].Author
	})

	var covered float64
	for _, s := range shares {
		covered += s.Share
		bf.AuthorCount++
		bf.TopAuthors = append(bf.TopAuthors, s)
		if covered >= cfg.BusFactorCoverage {
			break
		}
	}
	bf.Coverage = covered

	switch {
	case bf.AuthorCount <= cfg.BusFactorHighMax:
		bf.Risk = schema.RiskHigh
	case bf.AuthorCount <= cfg.BusFactorMediumMax:
		bf.Risk = schema.RiskMedium
	default:
		bf.Risk = schema.RiskLow
	}
	return bf
}

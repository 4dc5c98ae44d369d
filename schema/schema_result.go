package schema

import "time"

// AnalyticsResult is the composite output of one engine invocation. It is
// created once, never mutated, and may be shared by reference with any
// number of readers. Field names are stable for direct JSON serialization.
type AnalyticsResult struct {
	Fingerprint string    `json:"fingerprint"`
	ComputedAt  time.Time `json:"computed_at"`
	FromCache   bool      `json:"from_cache"`

	Temporal      TemporalSection      `json:"temporal"`
	Collaboration CollaborationSection `json:"collaboration"`
	Quality       QualitySection       `json:"quality"`
}

// Degraded reports whether any section failed to compute.
func (r *AnalyticsResult) Degraded() bool {
	return r.Temporal.Status == SectionFailed ||
		r.Collaboration.Status == SectionFailed ||
		r.Quality.Status == SectionFailed
}

// TemporalSection wraps the time analyzer output with its completion status.
// On failure Insights is nil and Error carries the condition.
type TemporalSection struct {
	Status   SectionStatus     `json:"status"`
	Error    string            `json:"error,omitempty"`
	Insights *TemporalInsights `json:"insights,omitempty"`
}

// CollaborationSection wraps the collaboration analyzer output.
type CollaborationSection struct {
	Status   SectionStatus          `json:"status"`
	Error    string                 `json:"error,omitempty"`
	Insights *CollaborationInsights `json:"insights,omitempty"`
}

// QualitySection wraps the quality/risk analyzer output.
type QualitySection struct {
	Status   SectionStatus    `json:"status"`
	Error    string           `json:"error,omitempty"`
	Insights *QualityInsights `json:"insights,omitempty"`
}

// --- Temporal analyzer output ---

// TemporalInsights holds velocity, heatmap, peak-period and bus-factor
// metrics derived from the snapshot's time and authorship dimensions.
type TemporalInsights struct {
	Velocity    VelocityTrend `json:"velocity"`
	Heatmap     Heatmap       `json:"heatmap"`
	PeakPeriods []PeakPeriod  `json:"peak_periods"`
	BusFactor   BusFactor     `json:"bus_factor"`
}

// VelocityTrend classifies commit velocity over the window by comparing the
// first and last thirds of the rolling daily average.
type VelocityTrend struct {
	Direction      TrendDirection `json:"direction"`
	WindowDays     int            `json:"window_days"`
	FirstThirdMean float64        `json:"first_third_mean"`
	LastThirdMean  float64        `json:"last_third_mean"`
	ChangePct      float64        `json:"change_pct"`
	DailyCommits   []DayCount     `json:"daily_commits"`
}

// DayCount is the commit count for one UTC day.
type DayCount struct {
	Day     time.Time `json:"day"`
	Commits int       `json:"commits"`
}

// Heatmap holds the two independent commit frequency tables plus the
// entries at or above the 90th percentile of each.
type Heatmap struct {
	ByHour    [24]int  `json:"by_hour"`
	ByWeekday [7]int   `json:"by_weekday"` // index 0 = Sunday, matching time.Weekday
	PeakHours []int    `json:"peak_hours"`
	PeakDays  []string `json:"peak_days"`
}

// PeakPeriod is a contiguous run of days whose commit counts sit at or above
// mean + threshold*stddev of the daily series.
type PeakPeriod struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Days      int       `json:"days"`
	Commits   int       `json:"commits"`
	Intensity float64   `json:"intensity"` // period average / overall average
}

// BusFactor is the minimum number of authors whose combined commits reach
// the coverage threshold.
type BusFactor struct {
	AuthorCount int           `json:"author_count"`
	Coverage    float64       `json:"coverage"` // achieved share, [0,1]
	Risk        RiskLevel     `json:"risk"`
	TopAuthors  []AuthorShare `json:"top_authors"`
}

// AuthorShare is one author's commit count and share of the snapshot.
type AuthorShare struct {
	Author  string  `json:"author"`
	Commits int     `json:"commits"`
	Share   float64 `json:"share"`
}

// --- Collaboration analyzer output ---

// CollaborationInsights holds co-authorship, knowledge-distribution and
// connectivity metrics. ReviewCoverage is a heuristic over commit-message
// trailers, not ground-truth review data.
type CollaborationInsights struct {
	TopPairs        []AuthorPair    `json:"top_pairs"`
	Silos           []KnowledgeSilo `json:"silos"`
	CategoryCount   int             `json:"category_count"`
	ReviewCoverage  float64         `json:"review_coverage"` // approximation from commit trailers
	ReviewedCommits int             `json:"reviewed_commits"`
	Connectivity    float64         `json:"connectivity"`
	Balance         float64         `json:"balance"`
	KnowledgeRisk   RiskLevel       `json:"knowledge_risk"`
}

// AuthorPair is an unordered author pair with its co-change affinity.
type AuthorPair struct {
	AuthorA     string  `json:"author_a"`
	AuthorB     string  `json:"author_b"`
	SharedFiles int     `json:"shared_files"`
	Strength    float64 `json:"strength"` // normalized, [0,1]
}

// KnowledgeSilo is a file category effectively owned by a single author.
type KnowledgeSilo struct {
	Category string  `json:"category"`
	Owner    string  `json:"owner"`
	Share    float64 `json:"share"`
	Touches  int     `json:"touches"`
}

// --- Quality analyzer output ---

// QualityInsights holds churn, complexity-trend, large-change and hotspot
// metrics plus the aggregate health rating.
type QualityInsights struct {
	HighChurnFiles  []FileChurn    `json:"high_churn_files"`
	ChurnCutoff     float64        `json:"churn_cutoff"` // P90 of the churn distribution
	TotalFiles      int            `json:"total_files"`
	ComplexityTrend TrendDirection `json:"complexity_trend"`
	LargeChanges    []LargeChange  `json:"large_changes"`
	LargeDensity    float64        `json:"large_density"` // large changes / total commits
	Hotspots        []FileChurn    `json:"hotspots"`
	HealthScore     float64        `json:"health_score"` // bounded 0-100
	HealthBucket    HealthBucket   `json:"health_bucket"`
	Risk            RiskLevel      `json:"risk"`
}

// FileChurn is the per-file churn summary within the window.
type FileChurn struct {
	Path    string `json:"path"`
	Churn   int    `json:"churn"` // lines added + deleted
	Commits int    `json:"commits"`
	Authors int    `json:"authors"`
}

// LargeChange is a commit whose file count exceeded the large-change
// threshold, with the corrective-keyword tag applied.
type LargeChange struct {
	Hash       string `json:"hash"`
	Files      int    `json:"files"`
	Message    string `json:"message"`
	Corrective bool   `json:"corrective"`
}

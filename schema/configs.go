package schema

// Default tuning values for the analyzers. Each one is overridable through
// the configuration surface; the defaults here are the documented contract.
const (
	DefaultVelocityWindowDays  = 7    // rolling average window for velocity trend
	DefaultPeakThreshold       = 1.5  // stddev multiplier for peak-period detection
	DefaultBusFactorCoverage   = 0.5  // cumulative commit share the bus factor must reach
	DefaultBusFactorHighMax    = 1    // bus factor <= this is high risk
	DefaultBusFactorMediumMax  = 2    // bus factor <= this is medium risk
	DefaultOwnershipThreshold  = 0.8  // touch share at or above this marks category ownership
	DefaultSiloMinTouches      = 5    // activity floor before a category can be a silo
	DefaultPairMinShared       = 2    // shared files before a pair counts as collaborating
	DefaultSiloRatioHigh       = 0.3  // silo/category ratio above this is high knowledge risk
	DefaultConnectivityFloor   = 0.3  // connectivity below this is high knowledge risk
	DefaultLargeChangeFiles    = 8    // file count strictly above this flags a large change
	DefaultChurnPercentile     = 0.9  // churn distribution cutoff for high-churn files
	DefaultHotspotLimit        = 10   // top-N hotspot files exposed
	DefaultTopPairLimit        = 5    // top-N collaborator pairs exposed
	DefaultTrendDeadZone       = 0.05 // relative difference below this reads as stable
	DefaultComplexityBucketDay = 7    // bucket width in days for the complexity trend proxy
	DefaultCacheCapacity       = 100  // bounded result cache entries
)

// Health score weights and penalty cutoffs. The aggregate rating is
// 100 - busWeight*busPenalty - churnWeight*churnPenalty - largeWeight*largePenalty,
// clamped to [0,100]. All constants are part of the documented contract.
const (
	HealthBusWeight   = 40.0
	HealthChurnWeight = 30.0
	HealthLargeWeight = 30.0

	// Fraction of high-churn files that grades churn risk.
	ChurnRiskHighRatio   = 0.25
	ChurnRiskMediumRatio = 0.10

	// Large-change density (large changes / total commits) that saturates
	// the large-change penalty.
	LargeChangeDensityCap = 0.2
)

// AnalyzerConfig holds the tunable parameters shared by all three analyzers.
// Zero values are not meaningful; construct with DefaultAnalyzerConfig and
// override fields as needed.
type AnalyzerConfig struct {
	VelocityWindowDays int     `json:"velocity_window_days"`
	PeakThreshold      float64 `json:"peak_threshold"`
	BusFactorCoverage  float64 `json:"bus_factor_coverage"`
	BusFactorHighMax   int     `json:"bus_factor_high_max"`
	BusFactorMediumMax int     `json:"bus_factor_medium_max"`
	OwnershipThreshold float64 `json:"ownership_threshold"`
	SiloMinTouches     int     `json:"silo_min_touches"`
	PairMinShared      int     `json:"pair_min_shared"`
	SiloRatioHigh      float64 `json:"silo_ratio_high"`
	ConnectivityFloor  float64 `json:"connectivity_floor"`
	LargeChangeFiles   int     `json:"large_change_files"`
	ChurnPercentile    float64 `json:"churn_percentile"`
	HotspotLimit       int     `json:"hotspot_limit"`
	TopPairLimit       int     `json:"top_pair_limit"`
}

// DefaultAnalyzerConfig returns the documented default tuning.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		VelocityWindowDays: DefaultVelocityWindowDays,
		PeakThreshold:      DefaultPeakThreshold,
		BusFactorCoverage:  DefaultBusFactorCoverage,
		BusFactorHighMax:   DefaultBusFactorHighMax,
		BusFactorMediumMax: DefaultBusFactorMediumMax,
		OwnershipThreshold: DefaultOwnershipThreshold,
		SiloMinTouches:     DefaultSiloMinTouches,
		PairMinShared:      DefaultPairMinShared,
		SiloRatioHigh:      DefaultSiloRatioHigh,
		ConnectivityFloor:  DefaultConnectivityFloor,
		LargeChangeFiles:   DefaultLargeChangeFiles,
		ChurnPercentile:    DefaultChurnPercentile,
		HotspotLimit:       DefaultHotspotLimit,
		TopPairLimit:       DefaultTopPairLimit,
	}
}

package schema

// Custom string types for type safety.
type (
	// TrendDirection classifies a metric series as rising, falling or flat.
	TrendDirection string

	// RiskLevel grades a risk signal.
	RiskLevel string

	// HealthBucket is the discrete rating derived from the health score.
	HealthBucket string

	// SectionStatus marks whether an analyzer section completed.
	SectionStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All trend directions supported.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// All risk levels supported.
const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// All health buckets supported, plus the score cutoffs that map a 0-100
// health score onto them. The cutoffs are part of the published contract
// and must not drift silently.
const (
	HealthExcellent HealthBucket = "excellent" // score >= 90
	HealthGood      HealthBucket = "good"      // score >= 75
	HealthFair      HealthBucket = "fair"      // score >= 60
	HealthPoor      HealthBucket = "poor"      // score >= 40
	HealthCritical  HealthBucket = "critical"  // score < 40
)

// Health score cutoffs for bucket assignment.
const (
	HealthExcellentCutoff = 90.0
	HealthGoodCutoff      = 75.0
	HealthFairCutoff      = 60.0
	HealthPoorCutoff      = 40.0
)

// All section statuses supported.
const (
	SectionOK     SectionStatus = "ok"
	SectionFailed SectionStatus = "failed"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All run-history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// HealthBucketForScore maps a bounded 0-100 health score to its bucket.
func HealthBucketForScore(score float64) HealthBucket {
	switch {
	case score >= HealthExcellentCutoff:
		return HealthExcellent
	case score >= HealthGoodCutoff:
		return HealthGood
	case score >= HealthFairCutoff:
		return HealthFair
	case score >= HealthPoorCutoff:
		return HealthPoor
	default:
		return HealthCritical
	}
}

package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teampulse/teampulse/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 90
	DefaultMaxCommits   = 10000
	MaxMaxCommits       = 100000
	DefaultRunLimit     = 20
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// NoCacheEnvVar disables result caching when set to any non-empty value.
const NoCacheEnvVar = "TEAMPULSE_NO_CACHE"

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath   string
	StartTime  time.Time
	EndTime    time.Time
	MaxCommits int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseUTC     bool

	CacheEnabled  bool
	CacheCapacity int

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext
	RunLimit     int

	Analyzer schema.AnalyzerConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start         string `mapstructure:"start"`
	End           string `mapstructure:"end"`
	MaxCommits    int    `mapstructure:"max-commits"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	UTC           bool   `mapstructure:"utc"`
	Cache         string `mapstructure:"cache"`
	CacheCapacity int    `mapstructure:"cache-capacity"`
	RunBackend    string `mapstructure:"run-backend"`
	RunDBConnect  string `mapstructure:"run-db-connect"`

	// --- Fields from runsCmd.Flags() ---
	RunLimit int `mapstructure:"run-limit"`

	// --- Analyzer tuning, config file or flags ---
	VelocityWindowDays int     `mapstructure:"velocity-window"`
	PeakThreshold      float64 `mapstructure:"peak-threshold"`
	BusFactorCoverage  float64 `mapstructure:"bus-coverage"`
	OwnershipThreshold float64 `mapstructure:"ownership-threshold"`
	SiloMinTouches     int     `mapstructure:"silo-min-touches"`
	LargeChangeFiles   int     `mapstructure:"large-change-files"`
	ChurnPercentile    float64 `mapstructure:"churn-percentile"`
	HotspotLimit       int     `mapstructure:"hotspot-limit"`
	TopPairLimit       int     `mapstructure:"top-pair-limit"`
}

// Clone returns a copy of the Config struct. All fields are values, so a
// plain copy is deep enough.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new
// StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// RevalidateWindow re-parses a start/end pair onto an existing config. Used
// by callers that accept window overrides after initial validation.
func RevalidateWindow(cfg *Config, start, end string) error {
	return processTimeRange(cfg, &ConfigRawInput{Start: start, End: end})
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processAnalyzerTuning(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UseUTC = input.UTC

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. MaxCommits Validation ---
	if input.MaxCommits <= 0 || input.MaxCommits > MaxMaxCommits {
		return fmt.Errorf("max-commits must be greater than 0 and cannot exceed %d (received %d)", MaxMaxCommits, input.MaxCommits)
	}
	cfg.MaxCommits = input.MaxCommits

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}

	// --- 3. Cache Validation ---
	enabled, err := ParseBoolString(input.Cache)
	if err != nil {
		return fmt.Errorf("invalid --cache value: %w", err)
	}
	cfg.CacheEnabled = enabled
	if os.Getenv(NoCacheEnvVar) != "" {
		cfg.CacheEnabled = false
	}
	cfg.CacheCapacity = input.CacheCapacity
	if cfg.CacheCapacity < 1 {
		cfg.CacheCapacity = schema.DefaultCacheCapacity
	}

	// --- 4. Run Store Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}
	cfg.RunLimit = input.RunLimit
	if cfg.RunLimit <= 0 {
		cfg.RunLimit = DefaultRunLimit
	}

	return nil
}

// processTimeRange handles the date parsing and time range validation.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.EndTime = now
	cfg.StartTime = cfg.EndTime.Add(-DefaultLookbackDays * 24 * time.Hour)

	parseAbsolute := func(s string) (time.Time, error) {
		return time.Parse(DateTimeFormat, s)
	}

	if input.Start != "" {
		t, err := parseAbsolute(input.Start)
		if err == nil {
			cfg.StartTime = t
		} else {
			t, relErr := ParseRelativeTime(input.Start, now)
			if relErr != nil {
				return fmt.Errorf("invalid start date format for '%s'. Expected absolute ISO8601, 'N [units] ago' or a shorthand like '90d': %v", input.Start, err)
			}
			cfg.StartTime = t
		}
	}

	if input.End != "" {
		t, err := parseAbsolute(input.End)
		if err == nil {
			cfg.EndTime = t
		} else {
			t, relErr := ParseRelativeTime(input.End, now)
			if relErr != nil {
				return fmt.Errorf("invalid end date format for '%s'. Expected absolute ISO8601, 'N [units] ago' or a shorthand like '90d': %v", input.End, err)
			}
			cfg.EndTime = t
		}
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// processAnalyzerTuning merges flag/config overrides over the documented
// analyzer defaults, validating the ratio-valued fields.
func processAnalyzerTuning(cfg *Config, input *ConfigRawInput) error {
	tuning := schema.DefaultAnalyzerConfig()

	if input.VelocityWindowDays > 0 {
		tuning.VelocityWindowDays = input.VelocityWindowDays
	}
	if input.PeakThreshold > 0 {
		tuning.PeakThreshold = input.PeakThreshold
	}
	if input.BusFactorCoverage != 0 {
		if input.BusFactorCoverage < 0 || input.BusFactorCoverage > 1 {
			return fmt.Errorf("bus-coverage must be between 0.0 and 1.0 (received %.2f)", input.BusFactorCoverage)
		}
		tuning.BusFactorCoverage = input.BusFactorCoverage
	}
	if input.OwnershipThreshold != 0 {
		if input.OwnershipThreshold < 0 || input.OwnershipThreshold > 1 {
			return fmt.Errorf("ownership-threshold must be between 0.0 and 1.0 (received %.2f)", input.OwnershipThreshold)
		}
		tuning.OwnershipThreshold = input.OwnershipThreshold
	}
	if input.SiloMinTouches > 0 {
		tuning.SiloMinTouches = input.SiloMinTouches
	}
	if input.LargeChangeFiles > 0 {
		tuning.LargeChangeFiles = input.LargeChangeFiles
	}
	if input.ChurnPercentile != 0 {
		if input.ChurnPercentile <= 0 || input.ChurnPercentile >= 1 {
			return fmt.Errorf("churn-percentile must be between 0.0 and 1.0 exclusive (received %.2f)", input.ChurnPercentile)
		}
		tuning.ChurnPercentile = input.ChurnPercentile
	}
	if input.HotspotLimit > 0 {
		tuning.HotspotLimit = input.HotspotLimit
	}
	if input.TopPairLimit > 0 {
		tuning.TopPairLimit = input.TopPairLimit
	}

	cfg.Analyzer = tuning
	return nil
}

// resolveRepoPath resolves the Git repository root for the context path.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	return nil
}

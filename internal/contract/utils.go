package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/teampulse/teampulse/schema"
)

// Color variables for console output.
var (
	HighRiskColor   = color.New(color.FgRed, color.Bold) // strong danger signal
	MediumRiskColor = color.New(color.FgYellow)          // standard caution, not bold
	LowRiskColor    = color.New(color.FgCyan)            // informational / healthy signal
)

// RiskPlainLabel returns the plain text label for a risk level. This is the
// core logic used for CSV, JSON, and table printing.
func RiskPlainLabel(risk schema.RiskLevel) string {
	switch risk {
	case schema.RiskHigh:
		return "High"
	case schema.RiskMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// RiskColorLabel returns a colored risk label for console output (table).
func RiskColorLabel(risk schema.RiskLevel) string {
	text := RiskPlainLabel(risk)
	switch risk {
	case schema.RiskHigh:
		return HighRiskColor.Sprint(text)
	case schema.RiskMedium:
		return MediumRiskColor.Sprint(text)
	default:
		return LowRiskColor.Sprint(text)
	}
}

// HealthColorLabel returns a colored health bucket label for console output.
// Excellent and good read as healthy, fair as caution, the rest as danger.
func HealthColorLabel(bucket schema.HealthBucket) string {
	text := string(bucket)
	switch bucket {
	case schema.HealthExcellent, schema.HealthGood:
		return LowRiskColor.Sprint(text)
	case schema.HealthFair:
		return MediumRiskColor.Sprint(text)
	default:
		return HighRiskColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run-history
// storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teampulse_runs.db"
	}
	return filepath.Join(homeDir, ".teampulse_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/teampulse/teampulse/schema"
)

// GitClient defines the Git operations the history collector needs.
// This allows the collection logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetCommitLog returns the raw commit log output (headers, full messages
	// and numstat lines) for the given time window.
	GetCommitLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error)
}

// RunStore defines the interface for the analysis run log.
// This allows mocking the store for testing.
type RunStore interface {
	// RecordRun persists one completed run and returns its unique ID.
	RecordRun(run schema.RunSummary) (int64, error)

	// ListRuns returns the most recent runs, newest first, up to limit.
	ListRuns(limit int) ([]schema.RunSummary, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

package schema

import "time"

// RunSummary is one persisted analysis run. The run log keeps enough of the
// result to answer "what did the team look like last week" without re-running
// the analyzers.
type RunSummary struct {
	ID           int64        `json:"id"`
	RepoPath     string       `json:"repo_path"`
	Fingerprint  string       `json:"fingerprint"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	WindowStart  time.Time    `json:"window_start"`
	WindowEnd    time.Time    `json:"window_end"`
	CommitCount  int          `json:"commit_count"`
	AuthorCount  int          `json:"author_count"`
	HealthScore  float64      `json:"health_score"`
	HealthBucket HealthBucket `json:"health_bucket"`
	Degraded     bool         `json:"degraded"`
}

// RunStoreStatus describes the run-history backend for status reporting.
type RunStoreStatus struct {
	Backend  DatabaseBackend `json:"backend"`
	Location string          `json:"location"`
	RunCount int             `json:"run_count"`
}

package sync

import (
	"fmt"
	"strings"
	"time"
)

// Plan is the reconciliation of one root against the project table.
// Building it has no side effects.
type Plan struct {
	RootDir   string `json:"root_dir" yaml:"root_dir" toml:"root_dir"`
	Year      int    `json:"year" yaml:"year" toml:"year"`
	MinStatus string `json:"min_status,omitempty" yaml:"min_status,omitempty" toml:"min_status,omitempty"`

	Expected int      `json:"expected" yaml:"expected" toml:"expected"`
	Actual   int      `json:"actual" yaml:"actual" toml:"actual"`
	Extra    int      `json:"extra" yaml:"extra" toml:"extra"` // On disk but not in the table; never touched
	Missing  []string `json:"missing" yaml:"missing" toml:"missing"`
}

// HasMissing returns true if any expected directory is absent.
func (p *Plan) HasMissing() bool {
	return len(p.Missing) > 0
}

// Summary returns a human-readable summary of the plan.
func (p *Plan) Summary() string {
	if !p.HasMissing() {
		return fmt.Sprintf("All %d expected directories exist", p.Expected)
	}
	return fmt.Sprintf("%d of %d expected directories missing", len(p.Missing), p.Expected)
}

// FailedTarget is a directory that could not be provisioned.
type FailedTarget struct {
	Path  string `json:"path" yaml:"path" toml:"path"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

// Result represents the complete result of a sync run.
type Result struct {
	RunID   string `json:"run_id" yaml:"run_id" toml:"run_id"`
	SeedDir string `json:"seed_dir" yaml:"seed_dir" toml:"seed_dir"`
	Plan    `yaml:",inline"`

	Created []string       `json:"created" yaml:"created" toml:"created"`
	Failed  []FailedTarget `json:"failed" yaml:"failed" toml:"failed"`
	Skipped []string       `json:"skipped" yaml:"skipped" toml:"skipped"`

	// Operation metadata
	DryRun    bool          `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at" toml:"started_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns" toml:"duration_ns"` // Nanoseconds
}

// HasChanges returns true if the run created anything (or would have, for a dry run).
func (sr *Result) HasChanges() bool {
	if sr.DryRun {
		return sr.HasMissing()
	}
	return len(sr.Created) > 0
}

// HasFailures returns true if any directory failed or was skipped.
func (sr *Result) HasFailures() bool {
	return len(sr.Failed) > 0 || len(sr.Skipped) > 0
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	if !sr.HasMissing() {
		return "No missing directories"
	}
	if sr.DryRun {
		return fmt.Sprintf("%d directories would be created (Dry run)", len(sr.Missing))
	}

	parts := []string{fmt.Sprintf("%d created", len(sr.Created))}
	if len(sr.Failed) > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", len(sr.Failed)))
	}
	if len(sr.Skipped) > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", len(sr.Skipped)))
	}
	return fmt.Sprintf("%s of %d missing directories", strings.Join(parts, ", "), len(sr.Missing))
}

// Package sync provides the options and results of a reconciliation run.
package sync

import (
	"time"

	"github.com/agentstation/seedsync/internal/utils/ptr"
	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/projects"
)

// Options controls a single Plan or Sync call.
type Options struct {
	// Selection
	Year      int              // Project year to reconcile
	MinStatus *projects.Status // Only projects at or beyond this status (nil means all)

	// Orchestration control
	DryRun   bool          // Report what would be created without touching the filesystem
	FailFast bool          // Stop on the first failed directory instead of continuing
	Timeout  time.Duration // Timeout for the entire run (0 means none)
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Year:      0,
		MinStatus: nil,
		DryRun:    false,
		FailFast:  false,
		Timeout:   0,
	}
}

// NewOptions returns Defaults with opts applied.
func NewOptions(opts ...Option) *Options {
	return Defaults().Apply(opts...)
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	return s.Filter().Validate()
}

// Filter returns the project selection part of the options.
func (s *Options) Filter() projects.Filter {
	return projects.Filter{Year: s.Year, MinStatus: s.MinStatus}
}

// WithYear selects the project year.
func WithYear(year int) Option {
	return func(opts *Options) {
		opts.Year = year
	}
}

// WithMinStatus keeps only projects at or beyond status.
func WithMinStatus(status projects.Status) Option {
	return func(opts *Options) {
		opts.MinStatus = ptr.To(status)
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithFailFast configures fail-fast behavior.
func WithFailFast(failFast bool) Option {
	return func(opts *Options) {
		opts.FailFast = failFast
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

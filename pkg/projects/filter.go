package projects

import "github.com/agentstation/seedsync/pkg/errors"

// Filter selects which project rows are expected on disk.
type Filter struct {
	Year int `json:"year" yaml:"year" toml:"year"`
	// MinStatus, when set, keeps only projects at or beyond this status.
	MinStatus *Status `json:"min_status,omitempty" yaml:"min_status,omitempty" toml:"min_status,omitempty"`
}

// Validate checks the filter values.
func (f Filter) Validate() error {
	if f.Year <= 0 {
		return errors.NewValidationError("year", f.Year, "must be a positive year")
	}
	if f.MinStatus != nil && !f.MinStatus.Valid() {
		return errors.NewValidationError("min_status", int(*f.MinStatus), "unknown status")
	}
	return nil
}

// Statuses returns the statuses the filter accepts, or nil when every status
// is accepted.
func (f Filter) Statuses() []Status {
	if f.MinStatus == nil {
		return nil
	}
	return StatusesFrom(*f.MinStatus)
}

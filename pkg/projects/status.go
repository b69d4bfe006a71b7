package projects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/seedsync/pkg/errors"
)

// Status is a project lifecycle stage. Stages are ordered; a larger value is
// further along.
type Status int

// Project lifecycle stages, in order.
const (
	StatusProposed Status = iota + 1
	StatusWorkOrderDone
	StatusApproved
	StatusFlightPlanDone
	StatusFlown
	StatusDataChecked
	StatusProcessed
	StatusDeliveredComplete
)

var statusNames = map[Status]string{
	StatusProposed:          "proposed",
	StatusWorkOrderDone:     "work order done",
	StatusApproved:          "approved",
	StatusFlightPlanDone:    "flight plan done",
	StatusFlown:             "flown",
	StatusDataChecked:       "data checked",
	StatusProcessed:         "processed",
	StatusDeliveredComplete: "delivered & complete",
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusProposed,
		StatusWorkOrderDone,
		StatusApproved,
		StatusFlightPlanDone,
		StatusFlown,
		StatusDataChecked,
		StatusProcessed,
		StatusDeliveredComplete,
	}
}

// ParseStatus parses a status name case-insensitively. Surrounding whitespace
// is ignored, inner spacing must match.
func ParseStatus(s string) (Status, error) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(s))
	for _, st := range Statuses() {
		if fold.String(statusNames[st]) == key {
			return st, nil
		}
	}
	return 0, errors.NewValidationError("status", s,
		fmt.Sprintf("unknown status %q: must be one of %s", s, strings.Join(StatusNames(), ", ")))
}

// StatusNames returns the canonical names of every status in lifecycle order.
func StatusNames() []string {
	names := make([]string, 0, len(statusNames))
	for _, st := range Statuses() {
		names = append(names, st.String())
	}
	return names
}

// String returns the canonical lowercase name stored in the database.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Valid reports whether s is one of the eight known stages.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Rank returns the 1-based position of s in the lifecycle.
func (s Status) Rank() int {
	return int(s)
}

// AtLeast reports whether s is at or beyond min.
func (s Status) AtLeast(min Status) bool {
	return s >= min
}

// StatusesFrom returns min and every later status, in order.
func StatusesFrom(min Status) []Status {
	var out []Status
	for _, st := range Statuses() {
		if st.AtLeast(min) {
			out = append(out, st)
		}
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.NewValidationError("status", int(s), "unknown status")
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Package reconcile compares the directories a root should contain with the
// directories it does contain.
//
// Reconciliation is one-directional: only expected paths that are absent are
// reported. Directories that exist but are not expected are counted for the
// report and otherwise left alone.
package reconcile

import (
	"github.com/agentstation/seedsync/pkg/dirset"
)

// Missing is the provisioning work list produced by Diff.
type Missing struct {
	// Paths are the expected directories that do not exist, in lexical order.
	Paths []string

	// Expected and Actual are the sizes of the inputs.
	Expected int
	Actual   int

	// Extra counts existing directories that are not expected. They are
	// never acted on.
	Extra int
}

// Diff returns expected \ actual.
func Diff(expected, actual *dirset.Set) Missing {
	if expected == nil {
		expected = dirset.New()
	}
	if actual == nil {
		actual = dirset.New()
	}

	return Missing{
		Paths:    expected.Difference(actual).Sorted(),
		Expected: expected.Len(),
		Actual:   actual.Len(),
		Extra:    actual.Difference(expected).Len(),
	}
}

// Empty reports whether nothing needs to be provisioned.
func (m Missing) Empty() bool {
	return len(m.Paths) == 0
}

// Len returns the number of missing directories.
func (m Missing) Len() int {
	return len(m.Paths)
}

// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"github.com/agentstation/seedsync/internal/cmd/emoji"
	"github.com/agentstation/seedsync/pkg/sync"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Outcomes shown in the result table.
const (
	OutcomeCreated = emoji.Success + " created"
	OutcomeFailed  = emoji.Error + " failed"
	OutcomeSkipped = emoji.Optional + " skipped"
	OutcomePlanned = emoji.Pending + " planned"
	OutcomeMissing = emoji.Pending + " missing"
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// PlanToTableData lists the missing directories of a plan.
func PlanToTableData(plan *sync.Plan) Data {
	rows := make([][]string, 0, len(plan.Missing))
	for _, path := range plan.Missing {
		rows = append(rows, []string{path, OutcomeMissing})
	}
	return Data{
		Headers: []string{"Path", "Status"},
		Rows:    rows,
	}
}

// ResultToTableData lists every missing directory of a run with its outcome.
func ResultToTableData(result *sync.Result) Data {
	rows := make([][]string, 0, len(result.Missing))

	if result.DryRun {
		for _, path := range result.Missing {
			rows = append(rows, []string{path, OutcomePlanned, ""})
		}
	} else {
		for _, path := range result.Created {
			rows = append(rows, []string{path, OutcomeCreated, ""})
		}
		for _, f := range result.Failed {
			rows = append(rows, []string{f.Path, OutcomeFailed, f.Error})
		}
		for _, path := range result.Skipped {
			rows = append(rows, []string{path, OutcomeSkipped, ""})
		}
	}

	return Data{
		Headers: []string{"Path", "Status", "Error"},
		Rows:    rows,
	}
}

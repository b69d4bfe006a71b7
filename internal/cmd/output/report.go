package output

import (
	"fmt"
	"io"
	"time"

	"github.com/agentstation/seedsync/internal/cmd/table"
	"github.com/agentstation/seedsync/pkg/projects"
	"github.com/agentstation/seedsync/pkg/sync"
)

// StatusEntry is one row of the status listing.
type StatusEntry struct {
	Rank int    `json:"rank" yaml:"rank" toml:"rank"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// StatusList wraps the status listing so every format gets a document
// rather than a bare list.
type StatusList struct {
	Statuses []StatusEntry `json:"statuses" yaml:"statuses" toml:"statuses"`
}

// FormatPlan writes a plan: a table of missing directories followed by a
// summary line, or the whole plan for structured formats.
func FormatPlan(w io.Writer, format Format, plan *sync.Plan) error {
	if format != FormatTable && format != "" {
		return NewFormatter(format).Format(w, plan)
	}
	if plan.HasMissing() {
		if err := NewFormatter(FormatTable).Format(w, table.PlanToTableData(plan)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s (%d extra left untouched)\n", plan.Summary(), plan.Extra)
	return err
}

// FormatResult writes a run report.
func FormatResult(w io.Writer, format Format, result *sync.Result) error {
	if format != FormatTable && format != "" {
		return NewFormatter(format).Format(w, result)
	}
	if result.HasMissing() {
		if err := NewFormatter(FormatTable).Format(w, table.ResultToTableData(result)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s in %s\n", result.Summary(), result.Duration.Round(time.Millisecond))
	return err
}

// FormatStatuses writes the ordered status list. The table view is built from
// the entries by reflection, so its columns follow the struct tags.
func FormatStatuses(w io.Writer, format Format, statuses []projects.Status) error {
	list := StatusList{Statuses: make([]StatusEntry, 0, len(statuses))}
	for _, s := range statuses {
		list.Statuses = append(list.Statuses, StatusEntry{Rank: s.Rank(), Name: s.String()})
	}

	if format == FormatTable || format == "" {
		return NewFormatter(FormatTable).Format(w, list.Statuses)
	}
	return NewFormatter(format).Format(w, list)
}

package backup

import (
	"fmt"
	"strings"
)

// Status classifies what happened to one configured save during a run.
type Status string

const (
	// StatusUpdated marks an entry whose destination was replaced.
	StatusUpdated Status = "updated"
	// StatusSkipped marks an entry left untouched, by choice or because a
	// recoverable problem (missing folder, declined prompt) stopped it.
	StatusSkipped Status = "skipped"
	// StatusFailed marks an entry that errored after the run decided to
	// process it. The run continues with the remaining entries.
	StatusFailed Status = "failed"
	// StatusPlanned marks what a dry run would have done.
	StatusPlanned Status = "planned"
)

// Outcome is the per-entry result line of a run.
type Outcome struct {
	Entry  string
	Status Status
	Detail string
}

func (o Outcome) String() string {
	if o.Detail == "" {
		return fmt.Sprintf("[%s] %s", o.Entry, o.Status)
	}
	return fmt.Sprintf("[%s] %s: %s", o.Entry, o.Status, o.Detail)
}

// Report collects the outcomes of one Sync or Apply run.
type Report struct {
	Outcomes []Outcome
}

// Count returns how many outcomes carry the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) summary() string {
	parts := []string{
		fmt.Sprintf("%d updated", r.Count(StatusUpdated)),
		fmt.Sprintf("%d skipped", r.Count(StatusSkipped)),
		fmt.Sprintf("%d failed", r.Count(StatusFailed)),
	}
	if n := r.Count(StatusPlanned); n > 0 {
		parts = append(parts, fmt.Sprintf("%d planned", n))
	}
	return strings.Join(parts, ", ")
}

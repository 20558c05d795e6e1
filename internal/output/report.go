package output

import (
	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/plan"
)

// PlanReport is everything the formatters print about a compiled pattern
type PlanReport struct {
	Name         string       `json:"name,omitempty"`
	Start        grid.DateKey `json:"start"`
	End          grid.DateKey `json:"end"`
	Days         int          `json:"days"`
	TotalWeight  int          `json:"total_weight"`
	TotalCommits int          `json:"total_commits"`
	Entries      plan.Plan    `json:"entries"`
}

// NewPlanReport compiles state against r
func NewPlanReport(name string, state grid.State, r calendar.Range) *PlanReport {
	p := plan.Compile(state, r)
	if p == nil {
		p = plan.Plan{}
	}
	return &PlanReport{
		Name:         name,
		Start:        r.StartKey(),
		End:          r.EndKey(),
		Days:         len(p),
		TotalWeight:  grid.TotalWeight(state),
		TotalCommits: p.TotalCommits(),
		Entries:      p,
	}
}

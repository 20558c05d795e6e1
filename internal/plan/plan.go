package plan

import (
	"sort"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
)

// Entry asks for Count synthetic commits on Date
type Entry struct {
	Date  grid.DateKey `json:"date" yaml:"date"`
	Count int          `json:"count" yaml:"count"`
}

// Plan is a chronologically ordered list of entries with unique dates
type Plan []Entry

// Compile keeps the painted days of state that fall inside r and orders them by date.
// Zero-level days, malformed keys and days outside r are dropped.
func Compile(state grid.State, r calendar.Range) Plan {
	p := make(Plan, 0, len(state))
	for key, level := range state {
		if level <= grid.LevelNone || !r.ContainsKey(key) {
			continue
		}
		p = append(p, Entry{Date: key, Count: int(level)})
	}
	// zero-padded YYYY-MM-DD orders lexically the same as chronologically
	sort.Slice(p, func(i, j int) bool { return p[i].Date < p[j].Date })
	return p
}

// TotalCommits sums Count across the plan
func (p Plan) TotalCommits() int {
	n := 0
	for _, e := range p {
		n += e.Count
	}
	return n
}

// Empty reports whether the plan produces no commits
func (p Plan) Empty() bool {
	return len(p) == 0
}

// Span returns the first and last dates of the plan
func (p Plan) Span() (first, last grid.DateKey, ok bool) {
	if len(p) == 0 {
		return "", "", false
	}
	return p[0].Date, p[len(p)-1].Date, true
}

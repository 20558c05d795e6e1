package script

import (
	"time"

	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/plan"
)

const (
	DefaultDataFile   = "./data.json"
	DefaultCommitHour = 12

	// TimestampLayout is accepted by git for both --date and GIT_*_DATE
	TimestampLayout = "2006-01-02 15:04:05"
)

// Options tunes how a plan is lowered into a Program
type Options struct {
	// DataFile is the marker file rewritten before every commit
	DataFile string
	// CommitHour is the wall-clock hour of the first commit of each day.
	// Nil or out of range selects DefaultCommitHour; 0 is midnight.
	CommitHour *int
}

// Hour returns h in the form Options.CommitHour expects
func Hour(h int) *int {
	return &h
}

func (o Options) withDefaults() Options {
	if o.DataFile == "" {
		o.DataFile = DefaultDataFile
	}
	if o.CommitHour == nil || *o.CommitHour < 0 || *o.CommitHour > 23 {
		o.CommitHour = Hour(DefaultCommitHour)
	}
	return o
}

// Commit is one "write marker, stage, commit at Timestamp" instruction
type Commit struct {
	Date      grid.DateKey
	Seq       int
	Timestamp string
}

// Day groups the commits generated for one plan entry
type Day struct {
	Date    grid.DateKey
	Commits []Commit
}

// Program is the target-neutral form every renderer consumes
type Program struct {
	DataFile string
	Days     []Day
}

// Build expands each plan entry into Count commits. Commit i of a day is stamped at
// CommitHour:00 plus i minutes, so stamps within a day are distinct and increasing.
func Build(p plan.Plan, opts Options) Program {
	opts = opts.withDefaults()
	prog := Program{DataFile: opts.DataFile}

	for _, e := range p {
		y, m, d, err := e.Date.Parse()
		if err != nil || e.Count <= 0 {
			continue
		}
		day := Day{Date: e.Date, Commits: make([]Commit, 0, e.Count)}
		for i := 0; i < e.Count; i++ {
			at := time.Date(y, m, d, *opts.CommitHour, i, 0, 0, time.UTC)
			day.Commits = append(day.Commits, Commit{
				Date:      e.Date,
				Seq:       i,
				Timestamp: at.Format(TimestampLayout),
			})
		}
		prog.Days = append(prog.Days, day)
	}
	return prog
}

// Commits flattens the program in execution order
func (p Program) Commits() []Commit {
	var out []Commit
	for _, d := range p.Days {
		out = append(out, d.Commits...)
	}
	return out
}

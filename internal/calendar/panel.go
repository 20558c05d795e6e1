package calendar

import (
	"time"

	"github.com/rohankatakam/gitart/internal/grid"
)

// Fixed contribution-calendar layout
const (
	WeeksPerPanel = 53
	DaysPerWeek   = 7
)

// CellState classifies a calendar cell for rendering and interaction
type CellState int

const (
	// CellHidden spills into an adjacent year and renders as an inert placeholder
	CellHidden CellState = iota
	// CellDimmed belongs to the panel year but lies outside the range
	CellDimmed
	// CellActive is paintable
	CellActive
)

func (s CellState) String() string {
	switch s {
	case CellActive:
		return "active"
	case CellDimmed:
		return "dimmed"
	default:
		return "hidden"
	}
}

// Cell is one square of a year panel
type Cell struct {
	Week  int
	Day   int
	Date  time.Time
	Key   grid.DateKey
	State CellState
}

// Panel is the 53x7 grid for one year, starting on the Sunday on or before Jan 1
type Panel struct {
	Year   int
	Origin time.Time
	rng    Range
}

// NewPanel lays out the panel for year against r
func NewPanel(year int, r Range) Panel {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, r.Location())
	return Panel{
		Year:   year,
		Origin: jan1.AddDate(0, 0, -int(jan1.Weekday())),
		rng:    r,
	}
}

// Panels returns the visible panels for r, most recent year first
func Panels(r Range) []Panel {
	var panels []Panel
	for _, y := range r.YearsToRender() {
		p := NewPanel(y, r)
		if p.Visible() {
			panels = append(panels, p)
		}
	}
	return panels
}

// Visible reports whether the panel's year intersects the range at all
func (p Panel) Visible() bool {
	return p.rng.IntersectsYear(p.Year)
}

// DateAt returns local midnight of the cell at (week, day)
func (p Panel) DateAt(week, day int) time.Time {
	return time.Date(p.Origin.Year(), p.Origin.Month(), p.Origin.Day()+week*DaysPerWeek+day, 0, 0, 0, 0, p.Origin.Location())
}

// Classify returns the state of a cell whose actual date is t
func (p Panel) Classify(t time.Time) CellState {
	if t.Year() != p.Year {
		return CellHidden
	}
	if p.rng.Contains(t) {
		return CellActive
	}
	return CellDimmed
}

// Cell returns the cell at (week, day)
func (p Panel) Cell(week, day int) Cell {
	t := p.DateAt(week, day)
	return Cell{
		Week:  week,
		Day:   day,
		Date:  t,
		Key:   grid.KeyOf(t),
		State: p.Classify(t),
	}
}

// Cells returns the full layout indexed [week][day]
func (p Panel) Cells() [][]Cell {
	weeks := make([][]Cell, WeeksPerPanel)
	for w := range weeks {
		weeks[w] = make([]Cell, DaysPerWeek)
		for d := range weeks[w] {
			weeks[w][d] = p.Cell(w, d)
		}
	}
	return weeks
}

// Locate finds the (week, day) position of key within this panel.
// Only dates belonging to the panel's year are located.
func (p Panel) Locate(key grid.DateKey) (week, day int, ok bool) {
	t, err := key.In(p.Origin.Location())
	if err != nil || t.Year() != p.Year {
		return 0, 0, false
	}
	days := daysBetween(p.Origin, t)
	if days/DaysPerWeek >= WeeksPerPanel {
		return 0, 0, false
	}
	return days / DaysPerWeek, days % DaysPerWeek, true
}

// MonthLabel returns the month to print above week.
// Week 0 is always January. Later weeks are labelled with the month whose 1st falls
// inside them; a week containing no 1st gets no label.
func (p Panel) MonthLabel(week int) (time.Month, bool) {
	if week == 0 {
		return time.January, true
	}
	if week < 0 || week >= WeeksPerPanel {
		return 0, false
	}
	weekStart := p.DateAt(week, 0)
	weekEnd := p.DateAt(week+1, 0)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(p.Year, m, 1, 0, 0, 0, 0, p.Origin.Location())
		if !first.Before(weekStart) && first.Before(weekEnd) {
			return m, true
		}
	}
	return 0, false
}

// daysBetween counts calendar days from a to b, ignoring DST shifts
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

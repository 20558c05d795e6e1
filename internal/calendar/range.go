package calendar

import (
	"time"

	"github.com/rohankatakam/gitart/internal/grid"
)

// Range is an inclusive window of whole calendar days.
// Start sits at local midnight and End at 23:59:59.999 of its day, so a single-day
// range still covers that full day. The zero Range is invalid and contains nothing.
type Range struct {
	Start time.Time
	End   time.Time
	valid bool
}

// NewRange normalizes start to midnight and end to end-of-day in their own locations
func NewRange(start, end time.Time) Range {
	return Range{
		Start: startOfDay(start),
		End:   endOfDay(end),
		valid: true,
	}
}

// ResolveRange builds a Range from user-entered YYYY-MM-DD strings.
//
// An empty boundary falls back to now's day. A malformed boundary yields an invalid
// Range: it renders no years and contains no dates. Resolution itself never fails.
func ResolveRange(startStr, endStr string, now time.Time) Range {
	loc := now.Location()

	start, okStart := resolveBoundary(startStr, now, loc)
	end, okEnd := resolveBoundary(endStr, now, loc)
	if !okStart || !okEnd {
		return Range{}
	}
	return NewRange(start, end)
}

func resolveBoundary(s string, now time.Time, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return now, true
	}
	t, err := grid.DateKey(s).In(loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether both boundaries parsed
func (r Range) Valid() bool {
	return r.valid
}

// Empty reports whether the range contains no day at all
func (r Range) Empty() bool {
	return !r.valid || r.Start.After(r.End)
}

// Location returns the zone the range was resolved in
func (r Range) Location() *time.Location {
	if !r.valid {
		return time.Local
	}
	return r.Start.Location()
}

// Contains reports whether t falls within [Start, End]
func (r Range) Contains(t time.Time) bool {
	if !r.valid {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsKey reports whether the day named by key falls within the range.
// Invalid keys are never contained.
func (r Range) ContainsKey(key grid.DateKey) bool {
	if !r.valid {
		return false
	}
	t, err := key.In(r.Location())
	if err != nil {
		return false
	}
	return r.Contains(t)
}

// YearsToRender lists the panel years from End's year down to Start's year
func (r Range) YearsToRender() []int {
	if !r.valid {
		return nil
	}
	var years []int
	for y := r.End.Year(); y >= r.Start.Year(); y-- {
		years = append(years, y)
	}
	return years
}

// IntersectsYear reports whether any day of year lies inside the range
func (r Range) IntersectsYear(year int) bool {
	if !r.valid {
		return false
	}
	loc := r.Location()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	dec31 := endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc))
	return !jan1.After(r.End) && !dec31.Before(r.Start)
}

// Days enumerates every day of the range in chronological order
func (r Range) Days() []grid.DateKey {
	if r.Empty() {
		return nil
	}
	var days []grid.DateKey
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, grid.KeyOf(d))
	}
	return days
}

// StartKey returns the DateKey of the first day, empty for an invalid range
func (r Range) StartKey() grid.DateKey {
	if !r.valid {
		return ""
	}
	return grid.KeyOf(r.Start)
}

// EndKey returns the DateKey of the last day, empty for an invalid range
func (r Range) EndKey() grid.DateKey {
	if !r.valid {
		return ""
	}
	return grid.KeyOf(r.End)
}

// Preset returns the boundaries of the window ending today and starting years earlier
func Preset(years int, now time.Time) (start, end grid.DateKey) {
	return grid.KeyOf(now.AddDate(-years, 0, 0)), grid.KeyOf(now)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

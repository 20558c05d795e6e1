package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitart/internal/grid"
)

var testNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolveRangeNormalizes(t *testing.T) {
	r := ResolveRange("2023-05-01", "2023-05-01", testNow)
	require.True(t, r.Valid())

	assert.Equal(t, day(2023, 5, 1), r.Start)
	assert.Equal(t, time.Date(2023, 5, 1, 23, 59, 59, int(999*time.Millisecond), time.Local), r.End)

	// a single-day range covers the whole day
	assert.True(t, r.Contains(time.Date(2023, 5, 1, 23, 0, 0, 0, time.Local)))
	assert.True(t, r.ContainsKey("2023-05-01"))
	assert.False(t, r.ContainsKey("2023-05-02"))
	assert.Equal(t, []grid.DateKey{"2023-05-01"}, r.Days())
}

func TestResolveRangeFallbacks(t *testing.T) {
	r := ResolveRange("", "", testNow)
	require.True(t, r.Valid())
	assert.Equal(t, grid.DateKey("2024-06-15"), r.StartKey())
	assert.Equal(t, grid.DateKey("2024-06-15"), r.EndKey())

	bad := ResolveRange("2023-13-40", "2024-01-01", testNow)
	assert.False(t, bad.Valid())
	assert.True(t, bad.Empty())
	assert.Empty(t, bad.YearsToRender())
	assert.Empty(t, bad.Days())
	assert.False(t, bad.ContainsKey("2024-01-01"))
	assert.Empty(t, Panels(bad))
}

func TestInvertedRangeIsEmpty(t *testing.T) {
	r := ResolveRange("2024-02-01", "2024-01-01", testNow)
	assert.True(t, r.Valid())
	assert.True(t, r.Empty())
	assert.Empty(t, r.Days())
	assert.Empty(t, r.YearsToRender())
	assert.False(t, r.ContainsKey("2024-01-15"))
}

func TestYearsToRender(t *testing.T) {
	r := ResolveRange("2022-03-01", "2024-11-15", testNow)
	assert.Equal(t, []int{2024, 2023, 2022}, r.YearsToRender())

	single := ResolveRange("2023-01-01", "2023-12-31", testNow)
	assert.Equal(t, []int{2023}, single.YearsToRender())
}

func TestDaysInclusive(t *testing.T) {
	r := ResolveRange("2023-12-30", "2024-01-02", testNow)
	assert.Equal(t, []grid.DateKey{"2023-12-30", "2023-12-31", "2024-01-01", "2024-01-02"}, r.Days())

	leap := ResolveRange("2024-01-01", "2024-12-31", testNow)
	assert.Len(t, leap.Days(), 366)
}

func TestPanelOrigin(t *testing.T) {
	r := ResolveRange("2023-01-01", "2023-12-31", testNow)

	// Jan 1 2023 is a Sunday
	assert.Equal(t, day(2023, 1, 1), NewPanel(2023, r).Origin)
	// Jan 1 2022 is a Saturday
	assert.Equal(t, day(2021, 12, 26), NewPanel(2022, r).Origin)
	assert.Equal(t, time.Sunday, NewPanel(2024, r).Origin.Weekday())
}

func TestCellClassification(t *testing.T) {
	r := ResolveRange("2022-03-01", "2024-11-15", testNow)
	p2022 := NewPanel(2022, r)
	p2023 := NewPanel(2023, r)
	p2024 := NewPanel(2024, r)

	jan3 := day(2023, 1, 3)
	assert.Equal(t, CellActive, p2023.Classify(jan3))
	assert.Equal(t, CellHidden, p2022.Classify(jan3))
	assert.Equal(t, CellHidden, p2024.Classify(jan3))

	// Dec 31 2023 is rendered by both the 2023 and 2024 panels
	c := p2024.Cell(0, 0)
	assert.Equal(t, grid.DateKey("2023-12-31"), c.Key)
	assert.Equal(t, CellHidden, c.State)
	w, d, ok := p2023.Locate("2023-12-31")
	require.True(t, ok)
	assert.Equal(t, CellActive, p2023.Cell(w, d).State)

	// inside the 2022 panel year but before the range start
	assert.Equal(t, CellDimmed, p2022.Classify(day(2022, 2, 28)))
	assert.Equal(t, CellActive, p2022.Classify(day(2022, 3, 1)))
	assert.Equal(t, CellDimmed, p2024.Classify(day(2024, 11, 16)))
	assert.Equal(t, CellActive, p2024.Classify(day(2024, 11, 15)))
}

func TestNoDateActiveInTwoPanels(t *testing.T) {
	r := ResolveRange("2020-01-01", "2024-12-31", testNow)
	seen := map[grid.DateKey]int{}
	for _, p := range Panels(r) {
		for _, week := range p.Cells() {
			for _, c := range week {
				if c.State == CellActive {
					seen[c.Key]++
				}
			}
		}
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "date %s active in %d panels", k, n)
	}
	assert.Len(t, seen, len(r.Days()))
}

func TestPanelsSuppressesDisjointYears(t *testing.T) {
	r := ResolveRange("2023-03-01", "2023-03-31", testNow)
	panels := Panels(r)
	require.Len(t, panels, 1)
	assert.Equal(t, 2023, panels[0].Year)

	cross := ResolveRange("2022-12-31", "2023-01-02", testNow)
	var years []int
	for _, p := range Panels(cross) {
		years = append(years, p.Year)
	}
	assert.Equal(t, []int{2023, 2022}, years)

	assert.False(t, NewPanel(2021, cross).Visible())
}

func TestCellsLayout(t *testing.T) {
	r := ResolveRange("2023-01-01", "2023-12-31", testNow)
	cells := NewPanel(2023, r).Cells()
	require.Len(t, cells, WeeksPerPanel)
	for _, week := range cells {
		require.Len(t, week, DaysPerWeek)
		for d, c := range week {
			assert.Equal(t, time.Weekday(d), c.Date.Weekday())
		}
	}
	// 2023 starts on Sunday, so its 53rd week begins Dec 31 and spills into 2024
	assert.Equal(t, grid.DateKey("2024-01-06"), cells[52][6].Key)
	assert.Equal(t, CellHidden, cells[52][6].State)
}

func TestLocate(t *testing.T) {
	r := ResolveRange("2023-01-01", "2023-12-31", testNow)
	p := NewPanel(2023, r)

	w, d, ok := p.Locate("2023-01-03")
	require.True(t, ok)
	assert.Equal(t, 0, w)
	assert.Equal(t, 2, d)

	_, _, ok = p.Locate("2024-01-01")
	assert.False(t, ok)
	_, _, ok = p.Locate("garbage")
	assert.False(t, ok)

	for _, k := range []grid.DateKey{"2023-03-12", "2023-07-04", "2023-11-05"} {
		w, d, ok := p.Locate(k)
		require.True(t, ok)
		assert.Equal(t, k, p.Cell(w, d).Key)
	}
}

func TestMonthLabels(t *testing.T) {
	r := ResolveRange("2023-01-01", "2023-12-31", testNow)
	p := NewPanel(2023, r)

	m, ok := p.MonthLabel(0)
	assert.True(t, ok)
	assert.Equal(t, time.January, m)

	_, ok = p.MonthLabel(1)
	assert.False(t, ok)

	// Feb 1 2023 is the Wednesday of week 4
	m, ok = p.MonthLabel(4)
	assert.True(t, ok)
	assert.Equal(t, time.February, m)

	labels := 0
	for w := 0; w < WeeksPerPanel; w++ {
		if _, ok := p.MonthLabel(w); ok {
			labels++
		}
	}
	assert.Equal(t, 12, labels)

	// leading partial week of 2022 starts in December but is still January
	m, ok = NewPanel(2022, r).MonthLabel(0)
	assert.True(t, ok)
	assert.Equal(t, time.January, m)
}

func TestPreset(t *testing.T) {
	start, end := Preset(2, testNow)
	assert.Equal(t, grid.DateKey("2022-06-15"), start)
	assert.Equal(t, grid.DateKey("2024-06-15"), end)
}

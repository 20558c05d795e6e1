package plan

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func TestCompileFiltersZeroAndOutOfRange(t *testing.T) {
	state := grid.State{
		"2023-01-05": 3,
		"2023-06-01": 0,
		"2024-01-01": 2,
	}
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)

	assert.Equal(t, Plan{{Date: "2023-01-05", Count: 3}}, Compile(state, r))
}

func TestCompileBoundariesInclusive(t *testing.T) {
	state := grid.State{
		"2022-12-31": 1,
		"2023-01-01": 1,
		"2023-12-31": 4,
		"2024-01-01": 1,
	}
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)

	p := Compile(state, r)
	assert.Equal(t, Plan{
		{Date: "2023-01-01", Count: 1},
		{Date: "2023-12-31", Count: 4},
	}, p)
	assert.Equal(t, 5, p.TotalCommits())

	first, last, ok := p.Span()
	assert.True(t, ok)
	assert.Equal(t, grid.DateKey("2023-01-01"), first)
	assert.Equal(t, grid.DateKey("2023-12-31"), last)
}

func TestCompileSortedAndUnique(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 43))
	r := calendar.ResolveRange("2020-01-01", "2024-12-31", testNow)

	for round := 0; round < 25; round++ {
		state := grid.State{}
		for i := 0; i < 200; i++ {
			key := grid.NewDateKey(2019+rng.IntN(7), time.Month(1+rng.IntN(12)), 1+rng.IntN(28))
			state[key] = grid.Level(rng.IntN(5))
		}

		p := Compile(state, r)
		seen := map[grid.DateKey]bool{}
		for i, e := range p {
			assert.False(t, seen[e.Date], "duplicate %s", e.Date)
			seen[e.Date] = true
			assert.Greater(t, e.Count, 0)
			assert.Equal(t, int(state[e.Date]), e.Count)
			if i > 0 {
				assert.Less(t, string(p[i-1].Date), string(e.Date), fmt.Sprintf("round %d", round))
			}
		}
	}
}

func TestCompileEmpty(t *testing.T) {
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)
	assert.True(t, Compile(nil, r).Empty())
	assert.True(t, Compile(grid.State{"2023-02-02": 0}, r).Empty())

	invalid := calendar.ResolveRange("nope", "2023-12-31", testNow)
	assert.True(t, Compile(grid.State{"2023-02-02": 2}, invalid).Empty())

	_, _, ok := Plan{}.Span()
	assert.False(t, ok)
}

func TestCompileSkipsMalformedKeys(t *testing.T) {
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)
	p := Compile(grid.State{"2023-02-30": 2, "2023-02-28": 1}, r)
	assert.Equal(t, Plan{{Date: "2023-02-28", Count: 1}}, p)
}

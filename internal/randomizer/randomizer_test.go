package randomizer

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 1, ClampCount(0))
	assert.Equal(t, 1, ClampCount(-20))
	assert.Equal(t, 1000, ClampCount(5000))
	assert.Equal(t, 50, ClampCount(50))
}

func TestEmptyRangeIsNoop(t *testing.T) {
	assert.Nil(t, NewRun(calendar.ResolveRange("2024-02-01", "2024-01-01", testNow), 50, nil))
	assert.Nil(t, NewRun(calendar.ResolveRange("bad", "2024-01-01", testNow), 50, nil))
}

func TestBatchSizing(t *testing.T) {
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)

	run := NewRun(r, 50, seeded(1))
	require.NotNil(t, run)
	assert.Equal(t, 5, run.BatchSize())

	total := 0
	for i := 0; i < Batches; i++ {
		total += run.BatchHits(i)
	}
	assert.Equal(t, 50, total)
	// 10 full batches of 5 reach 50, the last two issue nothing
	assert.Equal(t, 0, run.BatchHits(10))
	assert.Equal(t, 0, run.BatchHits(11))
	assert.Equal(t, 0, run.BatchHits(12))

	small := NewRun(r, 7, seeded(1))
	assert.Equal(t, 1, small.BatchSize())
	assert.Equal(t, 1, small.BatchHits(6))
	assert.Equal(t, 0, small.BatchHits(7))
}

func TestApplyWeightBounds(t *testing.T) {
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)

	for seed := uint64(0); seed < 20; seed++ {
		run := NewRun(r, 50, seeded(seed))
		out := run.Apply(grid.State{"2023-05-05": 4})

		weight := grid.TotalWeight(out)
		assert.LessOrEqual(t, weight, 50)
		assert.Greater(t, weight, 0)

		for k, lvl := range out {
			assert.True(t, r.ContainsKey(k), "hit outside range: %s", k)
			assert.True(t, lvl >= grid.LevelLow && lvl <= grid.LevelMax)
		}
	}
}

func TestHitsSaturate(t *testing.T) {
	// one candidate date: 1000 hits must stop at level 4, never wrap
	r := calendar.ResolveRange("2023-05-01", "2023-05-01", testNow)
	run := NewRun(r, 1000, seeded(3))
	out := run.Apply(grid.State{})
	assert.Equal(t, grid.State{"2023-05-01": grid.LevelMax}, out)
}

func TestApplyBatchIsIncremental(t *testing.T) {
	r := calendar.ResolveRange("2023-01-01", "2023-12-31", testNow)
	run := NewRun(r, 120, seeded(9))

	state := grid.State{}
	prev := 0
	for i := 0; i < Batches; i++ {
		before := grid.TotalWeight(state)
		state = run.ApplyBatch(state, i)
		w := grid.TotalWeight(state)
		assert.Equal(t, prev, before, "earlier batch result must not be mutated")
		assert.GreaterOrEqual(t, w, prev)
		assert.LessOrEqual(t, w-prev, run.BatchHits(i))
		prev = w
	}
	assert.LessOrEqual(t, prev, 120)
}

func TestStepInterval(t *testing.T) {
	assert.Equal(t, Growth/12, StepInterval())
}

// Package randomizer scatters a bounded number of intensity hits across a date range.
//
// The work is split into a fixed number of batches so a caller can apply them one timer
// tick at a time and animate the pattern "growing". Scheduling lives with the caller;
// everything here is synchronous.
package randomizer

import (
	"math/rand/v2"
	"time"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
)

const (
	// Batches is the number of growth steps per run
	Batches = 12

	MinCount     = 1
	MaxCount     = 1000
	DefaultCount = 50

	// LeadIn lets a preceding clear transition finish before the first batch
	LeadIn = 150 * time.Millisecond
	// Growth is the total time spread across all batches
	Growth = 350 * time.Millisecond
)

// StepInterval is the delay between two batches
func StepInterval() time.Duration {
	return Growth / Batches
}

// ClampCount forces a requested hit count into [MinCount, MaxCount]
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Run is one randomize request: N hits over a fixed list of candidate dates
type Run struct {
	dates     []grid.DateKey
	total     int
	batchSize int
	rng       *rand.Rand
}

// NewRun prepares a run of count hits over every day of r.
// It returns nil when r has no days, in which case randomizing is a no-op.
// A nil rng uses a randomly seeded source.
func NewRun(r calendar.Range, count int, rng *rand.Rand) *Run {
	dates := r.Days()
	if len(dates) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	total := ClampCount(count)
	return &Run{
		dates:     dates,
		total:     total,
		batchSize: (total + Batches - 1) / Batches,
		rng:       rng,
	}
}

// Total is the number of hits the run issues
func (r *Run) Total() int {
	return r.total
}

// BatchSize is ceil(Total / Batches)
func (r *Run) BatchSize() int {
	return r.batchSize
}

// Candidates returns the number of distinct dates hits may land on
func (r *Run) Candidates() int {
	return len(r.dates)
}

// BatchHits returns how many hits batch index applies.
// Trailing batches shrink, possibly to zero, once Total hits are issued.
func (r *Run) BatchHits(index int) int {
	if index < 0 || index >= Batches {
		return 0
	}
	start := index * r.batchSize
	end := min(start+r.batchSize, r.total)
	if end <= start {
		return 0
	}
	return end - start
}

// ApplyBatch applies batch index to state. Each hit picks a date uniformly with
// replacement and raises it by one, saturating at LevelMax.
func (r *Run) ApplyBatch(state grid.State, index int) grid.State {
	hits := r.BatchHits(index)
	if hits == 0 {
		return state
	}
	next := state.Clone()
	for i := 0; i < hits; i++ {
		key := r.dates[r.rng.IntN(len(r.dates))]
		if next[key] < grid.LevelMax {
			next[key]++
		}
	}
	return next
}

// Apply clears state and applies every batch in order
func (r *Run) Apply(state grid.State) grid.State {
	next := grid.Clear(state)
	for i := 0; i < Batches; i++ {
		next = r.ApplyBatch(next, i)
	}
	return next
}

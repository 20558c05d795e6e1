package grid

import (
	"fmt"
	"sort"
)

// State is the sparse painted pattern: DateKey -> Level.
//
// All operations are copy-on-write. A State handed to a caller is never mutated
// afterwards, so callers replace their reference with the returned value.
// A nil State is a valid empty pattern.
type State map[DateKey]Level

// Level returns the level at key, 0 when absent
func (s State) Level(key DateKey) Level {
	return s[key]
}

// SetLevel returns a state with key set to level.
// An out-of-range level is rejected and s is returned unchanged.
// When key already holds level, s itself is returned.
func SetLevel(s State, key DateKey, level Level) (State, error) {
	if !level.Valid() {
		return s, fmt.Errorf("%w: %d", ErrLevelOutOfRange, level)
	}
	if cur, ok := s[key]; ok && cur == level {
		return s, nil
	}
	next := s.Clone()
	next[key] = level
	return next, nil
}

// IncrementLevel cycles key through 0,1,2,3,4,0,...
func IncrementLevel(s State, key DateKey) State {
	next := s.Clone()
	next[key] = Level((int(s[key]) + 1) % levelCount)
	return next
}

// IncrementLevelClamped raises key by one, saturating at LevelMax.
// A key already at LevelMax leaves s unchanged.
func IncrementLevelClamped(s State, key DateKey) State {
	cur := s[key]
	if cur >= LevelMax {
		return s
	}
	next := s.Clone()
	next[key] = cur + 1
	return next
}

// Clear returns an empty state
func Clear(State) State {
	return State{}
}

// TotalWeight sums every level in s
func TotalWeight(s State) int {
	total := 0
	for _, l := range s {
		total += int(l)
	}
	return total
}

// Clone returns an independent copy of s
func (s State) Clone() State {
	next := make(State, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Keys returns the keys of s in ascending order
func (s State) Keys() []DateKey {
	keys := make([]DateKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Equal reports whether a and b hold the same non-zero levels.
// Explicit level-0 entries are treated the same as absent keys.
func Equal(a, b State) bool {
	for k, v := range a {
		if v != b[k] {
			return false
		}
	}
	for k, v := range b {
		if v != a[k] {
			return false
		}
	}
	return true
}

package grid

import (
	"errors"
	"fmt"
)

// ErrLevelOutOfRange is returned when a level outside [0,4] reaches the store
var ErrLevelOutOfRange = errors.New("intensity level out of range")

// Level is the paint intensity of a single day, 0 (empty) through 4
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelMax

	levelCount = int(LevelMax) + 1
)

// Valid reports whether l is within [LevelNone, LevelMax]
func (l Level) Valid() bool {
	return l >= LevelNone && l <= LevelMax
}

// ParseLevel converts a boundary integer into a Level, rejecting out-of-range values
func ParseLevel(n int) (Level, error) {
	l := Level(n)
	if !l.Valid() {
		return LevelNone, fmt.Errorf("%w: %d", ErrLevelOutOfRange, n)
	}
	return l, nil
}

// ClampLevel forces n into [LevelNone, LevelMax]
func ClampLevel(n int) Level {
	switch {
	case n < int(LevelNone):
		return LevelNone
	case n > int(LevelMax):
		return LevelMax
	default:
		return Level(n)
	}
}

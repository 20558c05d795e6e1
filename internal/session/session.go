// Package session owns the state of one painting session: the grid, the chosen date
// range, the drag level and any randomize run in progress. It is not safe for
// concurrent use; the painter drives it from a single event loop.
package session

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/rohankatakam/gitart/internal/plan"
	"github.com/rohankatakam/gitart/internal/prefs"
	"github.com/rohankatakam/gitart/internal/randomizer"
	"github.com/rohankatakam/gitart/internal/script"
)

// CountStep is how far AdjustRandomizeCount moves per keypress
const CountStep = 10

// Options configures a new session. Zero values pick sensible defaults.
type Options struct {
	Now            func() time.Time
	Rand           *rand.Rand
	Prefs          prefs.Store
	DefaultTheme   prefs.Theme
	CurrentLevel   grid.Level
	RandomizeCount int
	Years          int
	Script         script.Options
}

// Session is the interactive core
type Session struct {
	state   grid.State
	start   string
	end     string
	rng     calendar.Range
	current grid.Level
	count   int

	run         *randomizer.Run
	batch       int
	randomizing bool

	prefs      prefs.Store
	theme      prefs.Theme
	now        func() time.Time
	rand       *rand.Rand
	scriptOpts script.Options
	logger     *slog.Logger
}

// New starts a session covering the last opts.Years years (default 1) up to today
func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !opts.CurrentLevel.Valid() || opts.CurrentLevel == grid.LevelNone {
		opts.CurrentLevel = 3
	}
	if opts.RandomizeCount == 0 {
		opts.RandomizeCount = randomizer.DefaultCount
	}
	if opts.Years < 1 {
		opts.Years = 1
	}
	if opts.DefaultTheme == prefs.ThemeUnset {
		opts.DefaultTheme = prefs.ThemeDark
	}

	s := &Session{
		state:      grid.State{},
		current:    opts.CurrentLevel,
		count:      randomizer.ClampCount(opts.RandomizeCount),
		prefs:      opts.Prefs,
		theme:      prefs.Resolve(opts.Prefs, opts.DefaultTheme),
		now:        opts.Now,
		rand:       opts.Rand,
		scriptOpts: opts.Script,
		logger:     slog.Default().With("component", "session"),
	}
	s.ApplyPreset(opts.Years)
	return s
}

// State returns the current grid. Callers must treat it as read-only.
func (s *Session) State() grid.State { return s.state }

// Range returns the resolved active window
func (s *Session) Range() calendar.Range { return s.rng }

// Bounds returns the start and end strings as entered
func (s *Session) Bounds() (start, end string) { return s.start, s.end }

// Panels returns the visible year panels, most recent first
func (s *Session) Panels() []calendar.Panel { return calendar.Panels(s.rng) }

// CurrentLevel is the level applied by Drag
func (s *Session) CurrentLevel() grid.Level { return s.current }

// RandomizeCount is the number of hits the next randomize issues
func (s *Session) RandomizeCount() int { return s.count }

// Randomizing reports whether a run is in progress
func (s *Session) Randomizing() bool { return s.randomizing }

// SetRange sets the date window from YYYY-MM-DD strings. Empty strings mean today,
// malformed ones leave the session with an empty window until corrected.
func (s *Session) SetRange(start, end string) {
	s.start, s.end = start, end
	s.rng = calendar.ResolveRange(start, end, s.now())
	if !s.rng.Valid() {
		s.logger.Debug("range unresolved", "start", start, "end", end)
	}
}

// ApplyPreset sets the window to the last years years ending today
func (s *Session) ApplyPreset(years int) {
	start, end := calendar.Preset(years, s.now())
	s.SetRange(string(start), string(end))
}

// Active reports whether key is paintable in the current window
func (s *Session) Active(key grid.DateKey) bool {
	return s.rng.ContainsKey(key)
}

// Press cycles the level of an active cell
func (s *Session) Press(key grid.DateKey) bool {
	if !s.Active(key) {
		return false
	}
	s.state = grid.IncrementLevel(s.state, key)
	return true
}

// Drag paints an active cell with the current level; repeating it is a no-op
func (s *Session) Drag(key grid.DateKey) bool {
	if !s.Active(key) {
		return false
	}
	next, err := grid.SetLevel(s.state, key, s.current)
	if err != nil {
		return false
	}
	s.state = next
	return true
}

// SetCurrentLevel selects the drag level
func (s *Session) SetCurrentLevel(level grid.Level) error {
	if _, err := grid.ParseLevel(int(level)); err != nil {
		return err
	}
	s.current = level
	return nil
}

// SetRandomizeCount sets the hit count, clamped to [1, 1000]
func (s *Session) SetRandomizeCount(n int) {
	s.count = randomizer.ClampCount(n)
}

// AdjustRandomizeCount moves the hit count by delta, clamped to [1, 1000]
func (s *Session) AdjustRandomizeCount(delta int) {
	s.SetRandomizeCount(s.count + delta)
}

// Clear empties the grid
func (s *Session) Clear() {
	s.state = grid.Clear(s.state)
}

// StartRandomize clears the grid and prepares a run. It returns false, changing
// nothing, when a run is already in progress or the window has no days.
// The caller then calls StepRandomize once per tick until it reports done.
func (s *Session) StartRandomize() bool {
	if s.randomizing {
		return false
	}
	run := randomizer.NewRun(s.rng, s.count, s.rand)
	if run == nil {
		return false
	}
	s.run = run
	s.batch = 0
	s.randomizing = true
	s.state = grid.Clear(s.state)
	s.logger.Debug("randomize started", "hits", run.Total(), "days", run.Candidates())
	return true
}

// StepRandomize applies the next batch and reports whether the run has finished
func (s *Session) StepRandomize() (done bool) {
	if !s.randomizing {
		return true
	}
	s.state = s.run.ApplyBatch(s.state, s.batch)
	s.batch++
	if s.batch >= randomizer.Batches {
		s.randomizing = false
		s.run = nil
		s.logger.Debug("randomize finished", "weight", grid.TotalWeight(s.state))
		return true
	}
	return false
}

// RandomizeNow runs every batch immediately
func (s *Session) RandomizeNow() bool {
	if !s.StartRandomize() {
		return false
	}
	for !s.StepRandomize() {
	}
	return true
}

// ApplySuggestion paints s onto the panel for year, returning the cells written.
// A nil suggestion is ignored.
func (s *Session) ApplySuggestion(sug *pattern.Suggestion, year int) int {
	if sug == nil {
		return 0
	}
	next, applied := pattern.Apply(s.state, sug, calendar.NewPanel(year, s.rng))
	s.state = next
	s.logger.Info("suggestion applied", "pattern", sug.Name, "year", year, "cells", applied)
	return applied
}

// LoadState replaces the grid, e.g. from a pattern file
func (s *Session) LoadState(state grid.State) {
	s.state = state.Clone()
}

// Plan compiles the grid against the current window
func (s *Session) Plan() plan.Plan {
	return plan.Compile(s.state, s.rng)
}

// Script renders the current plan for target
func (s *Session) Script(target script.Target) (string, error) {
	return script.Emit(target, s.Plan(), s.scriptOpts)
}

// TotalWeight is the sum of every level on the grid, including cells outside the window
func (s *Session) TotalWeight() int {
	return grid.TotalWeight(s.state)
}

// Theme returns the active theme
func (s *Session) Theme() prefs.Theme { return s.theme }

// ToggleTheme flips the theme and persists it. A failed save keeps the new theme for
// this session.
func (s *Session) ToggleTheme() prefs.Theme {
	s.theme = s.theme.Toggle()
	if s.prefs != nil {
		if err := s.prefs.SetTheme(s.theme); err != nil {
			s.logger.Warn("failed to save theme", "error", err)
		}
	}
	return s.theme
}

package main

import (
	"time"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/history"
	"github.com/rohankatakam/gitart/internal/patternfile"
	"github.com/rohankatakam/gitart/internal/prefs"
	"github.com/rohankatakam/gitart/internal/script"
	"github.com/rohankatakam/gitart/internal/session"
	"github.com/spf13/cobra"
)

// rangeFlags are shared by every command that takes a date window
type rangeFlags struct {
	start string
	end   string
	years int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of the range (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&f.years, "years", 0, "use the last N years ending today (overrides --start/--end)")
}

// set reports whether the user gave any range flag
func (f *rangeFlags) set() bool {
	return f.start != "" || f.end != "" || f.years > 0
}

// bounds returns the start and end strings the flags select.
// With no flags the configured default preset applies.
func (f *rangeFlags) bounds(now time.Time) (string, string) {
	years := f.years
	if !f.set() {
		years = cfg.Paint.DefaultYears
	}
	if years > 0 {
		start, end := calendar.Preset(years, now)
		return string(start), string(end)
	}
	return f.start, f.end
}

func (f *rangeFlags) resolve(now time.Time) calendar.Range {
	start, end := f.bounds(now)
	return calendar.ResolveRange(start, end, now)
}

func scriptOptions() script.Options {
	return script.Options{
		DataFile:   cfg.Export.DataFile,
		CommitHour: script.Hour(cfg.Export.CommitHour),
	}
}

// openPrefs opens the bbolt preference store, falling back to memory
func openPrefs() prefs.Store {
	store, err := prefs.OpenBolt(cfg.Storage.PrefsPath)
	if err != nil {
		logger.WithError(err).Warn("Preferences unavailable, theme changes will not persist")
		return prefs.NewMemoryStore()
	}
	return store
}

// openHistory opens the suggestion log; nil when it cannot be opened
func openHistory() *history.Store {
	store, err := history.Open(cfg.Storage.HistoryPath, logger)
	if err != nil {
		logger.WithError(err).Warn("Suggestion history unavailable")
		return nil
	}
	return store
}

// buildSession starts a session from opts, then applies a saved pattern and the range
// flags, in that order
func buildSession(opts session.Options, rf *rangeFlags, patternPath string) (*session.Session, error) {
	sess := session.New(opts)

	if patternPath != "" {
		f, err := patternfile.Load(patternPath)
		if err != nil {
			return nil, err
		}
		sess.SetRange(f.Start, f.End)
		sess.LoadState(f.State())
	}

	if rf.set() {
		start, end := rf.bounds(time.Now())
		sess.SetRange(start, end)
	}
	return sess, nil
}

// loadDesign reads a pattern file; range flags override its stored window
func loadDesign(path string, rf *rangeFlags) (*patternfile.File, calendar.Range, error) {
	f, err := patternfile.Load(path)
	if err != nil {
		return nil, calendar.Range{}, err
	}
	now := time.Now()
	if rf.set() {
		return f, rf.resolve(now), nil
	}
	return f, f.Range(now), nil
}

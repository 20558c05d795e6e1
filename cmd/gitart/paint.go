package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/history"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/rohankatakam/gitart/internal/patternfile"
	"github.com/rohankatakam/gitart/internal/script"
	"github.com/rohankatakam/gitart/internal/session"
	"github.com/rohankatakam/gitart/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	paintRange   rangeFlags
	paintPattern string
	paintOut     string
	paintName    string
)

var paintCmd = &cobra.Command{
	Use:   "paint",
	Short: "Open the interactive contribution painter",
	Long: `Open the contribution calendar in the terminal and paint it.

Keys:
  arrows/hjkl  move          space  cycle the cell level
  p            pen on/off    0-4    pen level
  r            randomize     +/-    randomize count
  c            clear         e      export scripts
  a            AI pattern    d      edit date range
  t            theme         !@#$%  last 1-5 years
  q            quit

With --out the painted design is saved as a pattern file on exit.`,
	Example: `  gitart paint
  gitart paint --years 2
  gitart paint --start 2023-01-01 --end 2023-12-31 --out heart.yaml
  gitart paint --pattern heart.yaml`,
	Args: cobra.NoArgs,
	RunE: runPaint,
}

func init() {
	paintRange.register(paintCmd)
	paintCmd.Flags().StringVar(&paintPattern, "pattern", "", "start from a saved pattern file")
	paintCmd.Flags().StringVarP(&paintOut, "out", "o", "", "save the design to this pattern file on exit")
	paintCmd.Flags().StringVar(&paintName, "name", "", "name stored in the saved pattern file")
}

func runPaint(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	target, err := script.ParseTarget(cfg.Export.Target)
	if err != nil {
		return err
	}

	store := openPrefs()
	defer store.Close()

	sess, err := buildSession(session.Options{
		Prefs:          store,
		CurrentLevel:   grid.Level(cfg.Paint.DefaultLevel),
		RandomizeCount: cfg.Paint.RandomizeCount,
		Years:          cfg.Paint.DefaultYears,
		Script:         scriptOptions(),
	}, &paintRange, paintPattern)
	if err != nil {
		return err
	}

	opts := tui.Options{
		OutputDir: cfg.Export.OutputDir,
		Target:    target,
	}

	suggester, err := pattern.NewSuggester(ctx, cfg)
	switch {
	case err == nil:
		opts.Suggester = suggester
		if hist := openHistory(); hist != nil {
			defer hist.Close()
			opts.OnSuggestion = recordSuggestion(ctx, hist, suggester.Provider())
		}
	case errors.Is(err, pattern.ErrNoProvider):
		logger.Debug("AI suggestions disabled: no provider configured")
	default:
		logger.WithError(err).Warn("AI suggestions disabled")
	}

	if err := tui.Run(sess, opts); err != nil {
		return fmt.Errorf("painter failed: %w", err)
	}

	if paintOut == "" {
		return nil
	}
	f := patternfile.FromState(paintName, sess.Range(), sess.State())
	if err := patternfile.Save(paintOut, f); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"path":  paintOut,
		"cells": len(f.Cells),
	}).Info("Pattern saved")
	return nil
}

// recordSuggestion logs every applied suggestion to the history store
func recordSuggestion(ctx context.Context, hist *history.Store, provider pattern.Provider) tui.SuggestionHook {
	return func(prompt string, year int, s *pattern.Suggestion, applied int) {
		rec, err := history.NewRecord(prompt, provider, year, s)
		if err != nil {
			logger.WithError(err).Warn("Failed to encode suggestion")
			return
		}
		if err := hist.Save(ctx, rec); err != nil {
			logger.WithError(err).Warn("Failed to save suggestion")
			return
		}
		if err := hist.MarkApplied(ctx, rec.ID, applied); err != nil {
			logger.WithError(err).Warn("Failed to mark suggestion applied")
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohankatakam/gitart/internal/history"
	"github.com/rohankatakam/gitart/internal/output"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/rohankatakam/gitart/internal/patternfile"
	"github.com/rohankatakam/gitart/internal/session"
	"github.com/spf13/cobra"
)

var (
	suggestRange   rangeFlags
	suggestYear    int
	suggestPattern string
	suggestOut     string
	suggestLimit   int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Ask the AI provider for a pattern and paint it into a year",
	Long: `Describe a picture in plain words and let the configured AI provider lay it
out on the 53x7 grid of one year. Only days inside the range are painted.

The provider is chosen by ai.provider (gemini or openai). Keys are read from
GEMINI_API_KEY / OPENAI_API_KEY, the OS keychain, or ~/.gitart/credentials.yaml.
Every suggestion is kept in the local history and can be re-applied later.`,
	Example: `  gitart suggest "a heart" --out heart.yaml
  gitart suggest "space invader" --year 2023 --pattern base.yaml --out art.yaml
  gitart suggest history
  gitart suggest apply 3f2a --year 2024 --out again.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

var suggestHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved suggestions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSuggestHistory,
}

var suggestApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Paint a saved suggestion without calling the provider",
	Long:  `Paint a saved suggestion. The id may be any unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestApply,
}

var suggestDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a saved suggestion",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestDelete,
}

func init() {
	for _, c := range []*cobra.Command{suggestCmd, suggestApplyCmd} {
		suggestRange.register(c)
		c.Flags().IntVar(&suggestYear, "year", 0, "year panel to paint (default: current year)")
		c.Flags().StringVarP(&suggestPattern, "pattern", "p", "", "paint on top of this pattern file")
		c.Flags().StringVarP(&suggestOut, "out", "o", "", "pattern file to write")
		c.MarkFlagRequired("out")
	}
	suggestHistoryCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 20, "number of entries to show (0 = all)")

	suggestCmd.AddCommand(suggestHistoryCmd)
	suggestCmd.AddCommand(suggestApplyCmd)
	suggestCmd.AddCommand(suggestDeleteCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("describe the pattern to generate")
	}

	suggester, err := pattern.NewSuggester(ctx, cfg)
	if err != nil {
		if errors.Is(err, pattern.ErrNoProvider) {
			return fmt.Errorf("%w\nRun 'gitart config set-key gemini' or export GEMINI_API_KEY", err)
		}
		return err
	}

	output.Info(os.Stderr, "asking %s for %q...", suggester.Provider(), prompt)
	sug := pattern.SuggestOrNil(ctx, suggester, prompt)
	if sug == nil {
		return fmt.Errorf("no usable suggestion from %s (see the log for details)", suggester.Provider())
	}

	var hist *history.Store
	if hist = openHistory(); hist != nil {
		defer hist.Close()
	}

	var rec *history.Record
	if hist != nil {
		if rec, err = history.NewRecord(prompt, suggester.Provider(), suggestionYear(), sug); err == nil {
			err = hist.Save(ctx, rec)
		}
		if err != nil {
			logger.WithError(err).Warn("Failed to save suggestion")
			rec = nil
		}
	}

	applied, err := paintSuggestion(sug)
	if err != nil {
		return err
	}

	if rec != nil {
		if err := hist.MarkApplied(ctx, rec.ID, applied); err != nil {
			logger.WithError(err).Warn("Failed to mark suggestion applied")
		}
		output.Info(os.Stdout, "saved as %s", shortID(rec.ID))
	}
	return nil
}

func runSuggestApply(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	hist, err := history.Open(cfg.Storage.HistoryPath, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	rec, err := hist.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no saved suggestion %q", args[0])
		}
		return err
	}

	sug, err := rec.Suggestion()
	if err != nil {
		return err
	}

	if suggestYear == 0 && !suggestRange.set() && suggestPattern == "" {
		suggestYear = rec.Year
	}

	applied, err := paintSuggestion(sug)
	if err != nil {
		return err
	}
	return hist.MarkApplied(ctx, rec.ID, applied)
}

// paintSuggestion paints sug into the chosen year and saves the result to --out
func paintSuggestion(sug *pattern.Suggestion) (int, error) {
	year := suggestionYear()

	sess, err := buildSession(session.Options{
		Years:  1,
		Script: scriptOptions(),
	}, &suggestRange, suggestPattern)
	if err != nil {
		return 0, err
	}
	if suggestPattern == "" && !suggestRange.set() {
		sess.SetRange(fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
	}

	applied := sess.ApplySuggestion(sug, year)
	if applied == 0 {
		output.Warn(os.Stderr, "%q has no points on active days of %d", sug.Name, year)
	}

	f := patternfile.FromState(sug.Name, sess.Range(), sess.State())
	if err := patternfile.Save(suggestOut, f); err != nil {
		return 0, err
	}

	output.Success(os.Stdout, "painted %s into %d: %s, wrote %s",
		sug.Describe(), year, output.Plural(applied, "cell", "cells"), suggestOut)
	return applied, nil
}

func suggestionYear() int {
	if suggestYear > 0 {
		return suggestYear
	}
	return time.Now().Year()
}

func runSuggestHistory(cmd *cobra.Command, args []string) error {
	hist, err := history.Open(cfg.Storage.HistoryPath, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	records, err := hist.List(commandContext(cmd), suggestLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		output.Info(os.Stdout, "no saved suggestions")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Provider", "Name", "Year", "Cells", "Prompt"})
	for _, r := range records {
		t.AppendRow(table.Row{
			shortID(r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Provider,
			r.Name,
			r.Year,
			r.Applied,
			truncate(r.Prompt, 40),
		})
	}
	t.Render()
	return nil
}

func runSuggestDelete(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	hist, err := history.Open(cfg.Storage.HistoryPath, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	rec, err := hist.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no saved suggestion %q", args[0])
		}
		return err
	}
	if err := hist.Delete(ctx, rec.ID); err != nil {
		return err
	}
	output.Success(os.Stdout, "deleted %s (%s)", shortID(rec.ID), rec.Name)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

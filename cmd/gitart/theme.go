package main

import (
	"fmt"
	"os"

	"github.com/rohankatakam/gitart/internal/output"
	"github.com/rohankatakam/gitart/internal/prefs"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the painter theme",
	Long: `Show the saved painter theme, or change it. The choice is stored in
~/.gitart/prefs.db and used by every later 'gitart paint'.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	store, err := prefs.OpenBolt(cfg.Storage.PrefsPath)
	if err != nil {
		return err
	}
	defer store.Close()

	current := prefs.Resolve(store, prefs.ThemeDark)
	if len(args) == 0 {
		fmt.Fprintln(os.Stdout, current)
		return nil
	}

	next := current.Toggle()
	if args[0] != "toggle" {
		if next, err = prefs.ParseTheme(args[0]); err != nil {
			return err
		}
	}

	if err := store.SetTheme(next); err != nil {
		return err
	}
	output.Success(os.Stdout, "theme set to %s", next)
	return nil
}

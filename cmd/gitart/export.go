package main

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/rohankatakam/gitart/internal/output"
	"github.com/rohankatakam/gitart/internal/plan"
	"github.com/rohankatakam/gitart/internal/script"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	exportRange   rangeFlags
	exportPattern string
	exportTarget  string
	exportAll     bool
	exportStdout  bool
	exportOpen    bool
	exportOutDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the commit script for a pattern file",
	Long: `Generate a script that creates back-dated commits matching a pattern file.

Targets:
  nodejs      - git-art-script.js, run with node inside a git repository
  bash        - git-art-script.sh, executable
  powershell  - git-art-script.ps1

Each commit rewrites the data file, stages it and commits with the author and
committer dates set to the planned day.`,
	Example: `  gitart export --pattern heart.yaml
  gitart export --pattern heart.yaml --target powershell --out-dir ./scripts
  gitart export --pattern heart.yaml --all
  gitart export --pattern heart.yaml --target node --stdout`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportRange.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportPattern, "pattern", "p", "", "pattern file to export")
	exportCmd.Flags().StringVarP(&exportTarget, "target", "t", "", "script target: nodejs, bash, powershell (default from config)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "write scripts for every target")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "print the script instead of writing a file")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the written script with the system viewer")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "directory for written scripts (default from config)")
	exportCmd.MarkFlagRequired("pattern")
	exportCmd.MarkFlagsMutuallyExclusive("all", "stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	f, r, err := loadDesign(exportPattern, &exportRange)
	if err != nil {
		return err
	}

	p := plan.Compile(f.State(), r)
	if p.Empty() {
		output.Warn(os.Stderr, "nothing painted inside %s..%s, the script makes no commits", r.StartKey(), r.EndKey())
	}

	targets, err := exportTargets()
	if err != nil {
		return err
	}

	if exportStdout {
		body, err := script.Emit(targets[0], p, scriptOptions())
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, body)
		return nil
	}

	dir := exportOutDir
	if dir == "" {
		dir = cfg.Export.OutputDir
	}

	paths, err := writeScripts(dir, targets, p)
	if err != nil {
		return err
	}

	for _, path := range paths {
		output.Success(os.Stdout, "wrote %s", path)
	}
	output.Info(os.Stdout, "%s on %s",
		output.Plural(p.TotalCommits(), "commit", "commits"),
		output.Plural(len(p), "day", "days"))

	if exportOpen {
		for _, path := range paths {
			if err := browser.OpenFile(path); err != nil {
				logger.WithError(err).WithField("path", path).Warn("Failed to open script")
			}
		}
	}
	return nil
}

func exportTargets() ([]script.Target, error) {
	if exportAll {
		return script.Targets, nil
	}
	name := exportTarget
	if name == "" {
		name = cfg.Export.Target
	}
	t, err := script.ParseTarget(name)
	if err != nil {
		return nil, err
	}
	return []script.Target{t}, nil
}

// writeScripts renders and writes one script per target concurrently.
// Paths come back in target order.
func writeScripts(dir string, targets []script.Target, p plan.Plan) ([]string, error) {
	paths := make([]string, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			body, err := script.Emit(t, p, scriptOptions())
			if err != nil {
				return err
			}
			path, err := script.WriteFile(dir, t, body)
			if err != nil {
				return err
			}
			paths[i] = path
			logger.WithFields(logrus.Fields{
				"target": t,
				"path":   path,
			}).Debug("Script written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

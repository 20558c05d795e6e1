package main

import (
	"fmt"
	"os"

	"github.com/rohankatakam/gitart/internal/output"
	"github.com/spf13/cobra"
)

var (
	planRange   rangeFlags
	planPattern string
	planFormat  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the commits a pattern file will create",
	Long: `Compile a pattern file into its commit plan: one row per painted day inside
the range, in date order, with the number of commits that day receives.

Output formats:
  table  - plan table with totals (default)
  quiet  - one summary line
  json   - machine-readable plan`,
	Example: `  gitart plan --pattern heart.yaml
  gitart plan --pattern heart.yaml --format json
  gitart plan --pattern heart.yaml --start 2023-06-01`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planRange.register(planCmd)
	planCmd.Flags().StringVarP(&planPattern, "pattern", "p", "", "pattern file to compile")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "", "output format: table, quiet, json")
	planCmd.MarkFlagRequired("pattern")
}

func runPlan(cmd *cobra.Command, args []string) error {
	level := output.GetDefaultVerbosity()
	if planFormat != "" {
		var ok bool
		if level, ok = output.ParseVerbosity(planFormat); !ok {
			return fmt.Errorf("unknown format %q (want table, quiet or json)", planFormat)
		}
	}

	f, r, err := loadDesign(planPattern, &planRange)
	if err != nil {
		return err
	}

	report := output.NewPlanReport(f.Name, f.State(), r)
	return output.NewFormatter(level).Format(report, os.Stdout)
}

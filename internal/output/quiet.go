package output

import (
	"fmt"
	"io"
)

// QuietFormatter outputs a one-line summary
type QuietFormatter struct{}

func (f *QuietFormatter) Format(report *PlanReport, w io.Writer) error {
	if report.TotalCommits == 0 {
		_, err := fmt.Fprintln(w, "no commits planned")
		return err
	}
	_, err := fmt.Fprintf(w, "%d commits on %d days (%s to %s)\n",
		report.TotalCommits, report.Days, report.Start, report.End)
	return err
}

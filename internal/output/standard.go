package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MaxRows caps the table; longer plans end with an elision row
const MaxRows = 400

// StandardFormatter prints a summary followed by one table row per day
type StandardFormatter struct{}

func (f *StandardFormatter) Format(report *PlanReport, w io.Writer) error {
	title := "Commit plan"
	if report.Name != "" {
		title = fmt.Sprintf("Commit plan: %s", report.Name)
	}
	bold := color.New(color.Bold)
	bold.Fprintln(w, title)
	fmt.Fprintf(w, "Range: %s to %s\n", report.Start, report.End)
	fmt.Fprintf(w, "Planned: %d commits on %d days (grid weight %d)\n\n",
		report.TotalCommits, report.Days, report.TotalWeight)

	if len(report.Entries) == 0 {
		Warn(w, "nothing painted inside the range")
		return nil
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Date", "Weekday", "Commits", "Level"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})

	for i, e := range report.Entries {
		if i == MaxRows {
			tbl.AppendRow(table.Row{"...", "", fmt.Sprintf("+%d days", len(report.Entries)-MaxRows), ""})
			break
		}
		weekday := ""
		if y, m, d, err := e.Date.Parse(); err == nil {
			weekday = weekdayOf(y, m, d)
		}
		tbl.AppendRow(table.Row{e.Date, weekday, e.Count, levelBar(e.Count)})
	}
	tbl.AppendFooter(table.Row{"Total", "", report.TotalCommits, ""})
	tbl.Render()
	return nil
}

// levelBar draws a small intensity meter
func levelBar(count int) string {
	if count > 4 {
		count = 4
	}
	return strings.Repeat("#", count) + strings.Repeat(".", 4-count)
}

package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintSummary writes the aggregate counters of a run as a table.
func PrintSummary(out io.Writer, title string, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Total", "Passed", "Failed", "Skipped", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})
	t.AppendRow(table.Row{s.Total, s.Passed, s.Failed, s.Skipped, formatDuration(s.Duration)})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// PrintTests writes one row per test outcome.
func PrintTests(out io.Writer, tests []TestOutcome) {
	if len(tests) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Test", "Status", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 100, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
	})
	for _, test := range tests {
		t.AppendRow(table.Row{test.Name, test.Status, formatDuration(test.Duration)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func formatDuration(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", ms/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}

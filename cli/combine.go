package cli

// This file contains the combine and summary commands.

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/perfgo/reportctl/model"
	"github.com/urfave/cli/v2"
)

func (a *App) combine(ctx *cli.Context) error {
	count := positiveIntArg(ctx, 0, a.manager.Config().CombineCount)
	fmt.Fprintf(a.out, "Generating combined report from last %d reports...\n", count)

	combined, err := a.manager.CombineRecentRuns(count)
	if err != nil {
		return err
	}

	s := combined.Summary
	t := a.newTable("Combined Report")
	t.AppendHeader(table.Row{"Run", "Status", "Scenarios", "Passed", "Failed", "Skipped"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Scenarios", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})
	for _, source := range combined.Sources {
		switch source.State {
		case model.CombineSourceIncluded:
			t.AppendRow(table.Row{
				source.Run,
				statusText(source.Stats),
				source.Stats.Scenarios,
				source.Stats.Passed,
				source.Stats.Failed,
				source.Stats.Skipped,
			})
		case model.CombineSourceMissing:
			t.AppendRow(table.Row{source.Run, "no results", "-", "-", "-", "-"})
		default:
			t.AppendRow(table.Row{source.Run, "unreadable", "-", "-", "-", "-"})
		}
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d runs", s.TotalRuns),
		fmt.Sprintf("avg %.0f ms", s.AverageDuration),
		s.TotalTests,
		s.PassedTests,
		s.FailedTests,
		s.SkippedTests,
	})
	t.SetStyle(resultStyle(s.FailedTests, s.SkippedTests))
	t.Render()

	fmt.Fprintf(a.out, "Combined report generated: %s\n", a.manager.Config().CombinedReportPath())
	return nil
}

func (a *App) summary(ctx *cli.Context) error {
	fmt.Fprintln(a.out, "Generating summary report...")

	summary, err := a.manager.Summarize()
	if err != nil {
		return err
	}

	t := a.newTable("Summary Report")
	t.AppendHeader(table.Row{"", "Count", "Total Size"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendRow(table.Row{"New Reports", summary.NewReports.Count, formatMB(summary.TotalSize.NewReports)})
	t.AppendRow(table.Row{"Archived Reports", summary.ArchivedReports.Count, formatMB(summary.TotalSize.ArchivedReports)})
	t.Render()

	fmt.Fprintf(a.out, "Summary report generated: %s\n", a.manager.Config().SummaryPath())
	return nil
}

package cli

// This file contains the list command for displaying new and archived reports.

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/perfgo/reportctl/report"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	runs, err := a.manager.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No new reports found")
	} else {
		t := a.newTable(fmt.Sprintf("New Reports (%d)", len(runs)))
		t.AppendHeader(table.Row{"#", "Run", "Size", "Modified"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "#", Align: text.AlignRight},
			{Name: "Size", Align: text.AlignRight},
		})

		var total int64
		for i, run := range runs {
			size, err := report.DirectorySize(run.Path)
			if err != nil {
				a.logger.Warn().Err(err).Str("run", run.Name).Msg("Failed to measure report")
			}
			total += size

			// index as accepted by the view command
			t.AppendRow(table.Row{-i, run.Name, formatMB(size), formatTime(run.ModTime)})
		}
		t.AppendFooter(table.Row{"", "Total", formatMB(total), ""})
		t.Render()
	}

	fmt.Fprintln(a.out)

	archives, err := a.manager.ListArchives()
	if err != nil {
		return fmt.Errorf("failed to list archives: %w", err)
	}

	if len(archives) == 0 {
		fmt.Fprintln(a.out, "No archived reports found")
		return nil
	}

	t := a.newTable(fmt.Sprintf("Archived Reports (%d)", len(archives)))
	t.AppendHeader(table.Row{"Archive", "Size", "Modified"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Size", Align: text.AlignRight},
	})

	var total int64
	for _, archive := range archives {
		total += archive.Size
		t.AppendRow(table.Row{archive.Name, formatMB(archive.Size), formatTime(archive.ModTime)})
	}
	t.AppendFooter(table.Row{"Total", formatMB(total), ""})
	t.Render()

	fmt.Fprintf(a.out, "\nView a report: %s view <INDEX>\n", AppName)
	fmt.Fprintf(a.out, "Extract an archive: %s\n", commandHint("extract", archives[0].Name))

	return nil
}

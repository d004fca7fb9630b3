package cli

// This file contains the archive, clean and extract commands.

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/perfgo/reportctl/report"
	"github.com/urfave/cli/v2"
)

func (a *App) archive(ctx *cli.Context) error {
	days := positiveIntArg(ctx, 0, a.manager.Config().ArchiveDays)
	fmt.Fprintf(a.out, "Archiving reports older than %d days...\n", days)

	results, err := a.manager.ArchiveRunsOlderThan(days)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(a.out, "No reports to archive")
		return nil
	}

	t := a.newTable("Archived Reports")
	t.AppendHeader(table.Row{"Run", "Archive", "Size", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Size", Align: text.AlignRight},
	})

	archived := 0
	var restore string
	for _, result := range results {
		archiveName, size := "-", "-"
		if result.Archive != nil {
			archiveName = result.Archive.Name
			size = formatMB(result.Archive.Size)
		}

		status := "archived"
		if !result.OK() {
			status = "FAILED: " + result.Err.Error()
		} else {
			archived++
			if restore == "" {
				restore = result.Archive.Name
			}
		}

		t.AppendRow(table.Row{result.Run.Name, archiveName, size, status})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d/%d archived", archived, len(results))})
	t.Render()

	if restore != "" {
		fmt.Fprintf(a.out, "\nRestore a report: %s\n", commandHint("extract", restore))
	}

	return nil
}

func (a *App) clean(ctx *cli.Context) error {
	days := positiveIntArg(ctx, 0, a.manager.Config().CleanDays)
	fmt.Fprintf(a.out, "Cleaning archived reports older than %d days...\n", days)

	removed, err := a.manager.PruneArchivesOlderThan(days)
	for _, archive := range removed {
		fmt.Fprintf(a.out, "Removed old archive: %s\n", archive.Name)
	}
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		fmt.Fprintln(a.out, "No archives to remove")
	} else {
		fmt.Fprintf(a.out, "Removed %d archives\n", len(removed))
	}
	return nil
}

func (a *App) extract(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return cli.Exit("Please specify an archive name to extract", 1)
	}

	fmt.Fprintf(a.out, "Extracting %s...\n", name)

	dest, err := a.manager.Extract(name)
	if err != nil {
		var notFound *report.NotFoundError
		var invalid *report.InvalidNameError
		if errors.As(err, &notFound) || errors.As(err, &invalid) {
			return cli.Exit(fmt.Sprintf("Archive %s not found", name), 1)
		}
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	fmt.Fprintf(a.out, "Extracted to %s\n", dest)
	return nil
}

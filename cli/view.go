package cli

// This file contains the view command for displaying the results of one report.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/perfgo/reportctl/model"
	"github.com/urfave/cli/v2"
)

func removeFirstDashDash(in []string) []string {
	if len(in) > 0 && in[0] == "--" {
		return in[1:]
	}
	return in
}

// parseViewArgs returns the run selector, defaulting to "0" (newest).
func parseViewArgs(in []string) string {
	in = removeFirstDashDash(in)
	if len(in) == 0 || in[0] == "" {
		return "0"
	}
	return in[0]
}

// selectRun resolves a selector against runs sorted newest first.
// 0 is the newest run, -1 the one before, ...; anything else is a run name
// prefix.
func selectRun(runs []model.Run, arg string) (model.Run, error) {
	if len(runs) == 0 {
		return model.Run{}, fmt.Errorf("no reports found")
	}

	parsed, err := strconv.ParseInt(arg, 10, 64)
	if err == nil && parsed <= 0 {
		if parsed < -int64(len(runs)-1) {
			return model.Run{}, fmt.Errorf("index %s out of range (only %d reports)", arg, len(runs))
		}
		return runs[-parsed], nil
	}

	// Treat as run name prefix; runs are newest first so the newest match wins.
	// All-digit prefixes such as a year land here too.
	for _, run := range runs {
		if strings.HasPrefix(run.Name, arg) {
			return run, nil
		}
	}
	if err == nil {
		// Positive integers are not indexes
		return model.Run{}, fmt.Errorf("invalid index: %s (use 0 for newest, -1 for second newest, -2 for third newest, etc.)", arg)
	}
	return model.Run{}, fmt.Errorf("no report found matching: %s", arg)
}

func (a *App) view(ctx *cli.Context) error {
	arg := parseViewArgs(ctx.Args().Slice())

	runs, err := a.manager.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	run, err := selectRun(runs, arg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	detail, err := a.manager.Inspect(run.Name)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	return a.displayRunDetail(detail)
}

func (a *App) displayRunDetail(detail *model.RunDetail) error {
	fmt.Fprintf(a.out, "=== Report: %s ===\n", detail.Run.Name)
	fmt.Fprintf(a.out, "Time: %s\n", detail.Run.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "Size: %s\n", formatMB(detail.Size))
	fmt.Fprintf(a.out, "Screenshots: %d\n", detail.Screenshots)
	fmt.Fprintf(a.out, "Videos: %d\n", detail.Videos)
	fmt.Fprintf(a.out, "Path: %s\n", detail.Run.Path)
	fmt.Fprintln(a.out)

	if !detail.HasResults {
		fmt.Fprintln(a.out, "No cucumber results found (json/cucumber-report.json)")
		return nil
	}

	t := a.newTable("")
	t.AppendHeader(table.Row{"Feature", "Status", "Scenarios", "Steps", "Passed", "Failed", "Skipped"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Feature", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Scenarios", Align: text.AlignRight},
		{Name: "Steps", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})
	for _, feature := range detail.Features {
		name := feature.Name
		if name == "" {
			name = feature.URI
		}
		t.AppendRow(table.Row{
			name,
			statusText(feature.Stats),
			feature.Stats.Scenarios,
			feature.Stats.Steps,
			feature.Stats.Passed,
			feature.Stats.Failed,
			feature.Stats.Skipped,
		})
	}
	s := detail.Stats
	t.AppendFooter(table.Row{"Total", statusText(s), s.Scenarios, s.Steps, s.Passed, s.Failed, s.Skipped})
	t.SetStyle(resultStyle(s.Failed, s.Skipped))
	t.Render()

	return nil
}

package cli

// This file contains console formatting helpers shared by the commands.

import (
	"fmt"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/perfgo/reportctl/model"
)

func formatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// commandHint renders a reportctl invocation that can be pasted into a shell.
func commandHint(args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, AppName)
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

func (a *App) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// resultStyle colours a table by outcome, the same way for every command.
func resultStyle(failed, skipped int) table.Style {
	switch {
	case failed > 0:
		return table.StyleColoredBlackOnRedWhite
	case skipped > 0:
		return table.StyleColoredBlackOnYellowWhite
	default:
		return table.StyleColoredBlackOnGreenWhite
	}
}

func statusText(stats model.Stats) string {
	switch {
	case stats.Failed > 0:
		return "FAIL"
	case stats.Skipped > 0:
		return "SKIP"
	case stats.Steps == 0:
		return "EMPTY"
	default:
		return "PASS"
	}
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/perfgo/reportctl/config"
	"github.com/perfgo/reportctl/report"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "reportctl"

type App struct {
	logger  zerolog.Logger
	cli     *cli.App
	out     io.Writer
	errOut  io.Writer
	manager *report.Manager
}

func New() *App {
	return newApp(os.Stdout, os.Stderr)
}

func newApp(out, errOut io.Writer) *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        errOut,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		out:    out,
		errOut: errOut,
	}
	app.cli = &cli.App{
		Name:      AppName,
		Usage:     "Archive, clean and combine end-to-end test run reports",
		Writer:    out,
		ErrWriter: errOut,
		Authors: []*cli.Author{
			{Name: "Christian Simon", Email: fmt.Sprintf("simon+%s@swine.de", AppName)},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (ignored when missing)",
				Value:   config.DefaultFile,
			},
			&cli.StringFlag{
				Name:    "reports-dir",
				Aliases: []string{"d"},
				Usage:   "Reports root containing new/, archived/ and combined/ (default: " + config.DefaultReportsDir + ")",
			},
		},
		Before: app.before,
		// Reached only when the first argument is not a known command
		Action: app.unknownCommand,
		Description: `Examples:
  reportctl archive 7
  reportctl clean 30
  reportctl combine 10
  reportctl summary
  reportctl list
  reportctl extract 2024-01-15_14-30-00.zip
  reportctl view -1`,
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "archive",
		Usage:     "Archive reports older than the given number of days (default: 7)",
		ArgsUsage: "[days]",
		Action:    app.archive,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "clean",
		Usage:     "Delete archived reports older than the given number of days (default: 30)",
		ArgsUsage: "[days]",
		Action:    app.clean,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "combine",
		Usage:     "Generate a combined report from the last N reports (default: 5)",
		ArgsUsage: "[count]",
		Action:    app.combine,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "summary",
		Usage:  "Generate a summary report of all reports",
		Action: app.summary,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List all new and archived reports",
		Action: app.list,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "extract",
		Usage:     "Extract an archived report into the extracted/ directory",
		ArgsUsage: "<archive>",
		Action:    app.extract,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:            "view",
		Usage:           "Show the per-feature results of a report",
		ArgsUsage:       "[INDEX|NAME]",
		Action:          app.view,
		SkipFlagParsing: true,
		Description: `Show the per-feature results of a report.

Arguments:
  0           View the newest report (default)
  -1          View the 2nd newest report
  -2          View the 3rd newest report
  <name>      View the report whose directory name starts with <name>

Examples:
  reportctl view                  # newest report
  reportctl view -1               # 2nd newest report
  reportctl view 2024-01-15_14    # report from 2024-01-15 14:xx`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		if len(commit) > 8 {
			commit = commit[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	}
}

func (a *App) before(ctx *cli.Context) error {
	if ctx.Bool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	if dir := ctx.String("reports-dir"); dir != "" {
		cfg = cfg.WithReportsDir(dir)
	}
	cfg, err = cfg.Resolve()
	if err != nil {
		return err
	}

	a.logger.Debug().Str("reports_dir", cfg.ReportsDir).Msg("Using reports directory")
	a.manager = report.New(a.logger, cfg)
	return nil
}

func (a *App) unknownCommand(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		fmt.Fprintln(a.errOut, "No command specified")
	} else {
		fmt.Fprintf(a.errOut, "Unknown command: %s\n", name)
	}
	if err := cli.ShowAppHelp(ctx); err != nil {
		return err
	}
	return cli.Exit("", 1)
}

// positiveIntArg returns the n-th positional argument as a positive integer,
// or def when it is absent, not a number or not positive.
func positiveIntArg(ctx *cli.Context, n int, def int) int {
	arg := ctx.Args().Get(n)
	if arg == "" {
		return def
	}
	v, err := strconv.Atoi(arg)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

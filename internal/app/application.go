package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/denizgursoy/cukestatus/pkg/config"
	"github.com/denizgursoy/cukestatus/pkg/formatter"
	"github.com/denizgursoy/cukestatus/pkg/instrument"
	"github.com/denizgursoy/cukestatus/pkg/logging"
	"github.com/denizgursoy/cukestatus/pkg/planner"
	"github.com/denizgursoy/cukestatus/pkg/report"
	"github.com/denizgursoy/cukestatus/pkg/runner"
)

// ErrRunFailed is returned by the run command when any scenario did not pass.
var ErrRunFailed = errors.New("run failed")

// RunnerFactory builds the runner for a command from the merged config.
type RunnerFactory func(cfg *config.Config, logger logging.Logger, stdout, stderr io.Writer) FeatureRunner

type Application struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newRunner RunnerFactory
	newLogger func(level string) (logging.Logger, func(), error)
}

// StartApplication runs the command line against the process streams.
func StartApplication(ctx context.Context, args []string) error {
	return New(os.Stdin, os.Stdout, os.Stderr, nil).Command().Run(ctx, args)
}

// New creates the application. A nil factory builds a CucumberRunner with
// an empty step registry.
func New(stdin io.Reader, stdout, stderr io.Writer, factory RunnerFactory) *Application {
	if factory == nil {
		factory = defaultRunner
	}
	return &Application{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		newRunner: factory,
		newLogger: logging.NewZap,
	}
}

func defaultRunner(cfg *config.Config, logger logging.Logger, stdout, stderr io.Writer) FeatureRunner {
	return runner.NewCucumberRunner().
		WithConfig(cfg).
		WithLogger(logger).
		WithSink(instrument.NewStreamSink(stdout)).
		WithFormatter(formatter.NewConsoleFormatter(stderr, !cfg.NoColor && formatter.ColorsEnabled(stderr))).
		WithFormatter(formatter.NewLogFormatter(logger))
}

// Command returns the root command.
func (a *Application) Command() *cli.Command {
	return &cli.Command{
		Name:      "cukestatus",
		Usage:     "Report Gherkin scenario results as instrumentation status",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Reader:    a.stdin,
		Commands: []*cli.Command{
			a.runCommand(),
			a.countCommand(),
			a.timingsCommand(),
		},
	}
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (default: search for .cukestatus.yaml upwards)",
			Sources: cli.EnvVars("CUKESTATUS_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "tags",
			Aliases: []string{"t"},
			Usage:   "tag expression selecting scenarios, e.g. \"@smoke and not @slow\"",
			Sources: cli.EnvVars("CUKESTATUS_TAGS"),
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "regular expression selecting scenarios by name",
			Sources: cli.EnvVars("CUKESTATUS_NAME"),
		},
	}
}

func (a *Application) runCommand() *cli.Command {
	flags := append(selectionFlags(),
		&cli.StringFlag{
			Name:    "skip-file",
			Usage:   "file persisting the skip flag between runs",
			Sources: cli.EnvVars("CUKESTATUS_SKIP_FILE"),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "walk every scenario without executing steps",
			Sources: cli.EnvVars("CUKESTATUS_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "disable colored console output",
			Sources: cli.EnvVars("CUKESTATUS_NO_COLOR", "NO_COLOR"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Sources: cli.EnvVars("CUKESTATUS_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:    "disable-log",
			Usage:   "discard all log output",
			Sources: cli.EnvVars("CUKESTATUS_DISABLE_LOG"),
		},
		&cli.StringFlag{
			Name:    "snippets",
			Usage:   "write step definition stubs for undefined steps to this file",
			Sources: cli.EnvVars("CUKESTATUS_SNIPPETS"),
		},
		&cli.StringFlag{
			Name:    "identifier",
			Usage:   "id sent with every status",
			Sources: cli.EnvVars("CUKESTATUS_IDENTIFIER"),
		},
	)

	return &cli.Command{
		Name:      "run",
		Usage:     "Replay feature files and write the status stream to stdout",
		ArgsUsage: "[files or directories...]",
		Flags:     flags,
		Action:    a.run,
	}
}

func (a *Application) countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Print the planned number of scenario instances per feature",
		ArgsUsage: "[files or directories...]",
		Flags:     selectionFlags(),
		Action:    a.count,
	}
}

func (a *Application) timingsCommand() *cli.Command {
	return &cli.Command{
		Name:   "timings",
		Usage:  "Read a serialized steps map from stdin and print it as a table",
		Action: a.timings,
	}
}

// loadConfig merges the config file with the command line (flags win).
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	fileCfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	flagCfg := &config.Config{
		Features:   cmd.Args().Slice(),
		Tags:       cmd.String("tags"),
		Name:       cmd.String("name"),
		SkipFile:   cmd.String("skip-file"),
		DryRun:     cmd.Bool("dry-run"),
		NoColor:    cmd.Bool("no-color"),
		DisableLog: cmd.Bool("disable-log"),
		LogLevel:   cmd.String("log-level"),
		Identifier: cmd.String("identifier"),
		Snippets:   cmd.String("snippets"),
	}

	return config.MergeConfigs(fileCfg, flagCfg), nil
}

func (a *Application) logger(cfg *config.Config) (logging.Logger, func(), error) {
	if cfg.DisableLog {
		return logging.Noop(), func() {}, nil
	}
	return a.newLogger(cfg.LogLevel)
}

func (a *Application) run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, flush, err := a.logger(cfg)
	if err != nil {
		return err
	}
	defer flush()

	summary, err := a.newRunner(cfg, logger, a.stdout, a.stderr).Run(ctx)
	if err != nil {
		return err
	}

	if summary.Failed() {
		return fmt.Errorf("%w: %d passed, %d errors, %d failures, %d syntax errors",
			ErrRunFailed, summary.Passed, summary.Errors, summary.Failures, summary.SyntaxErrors)
	}
	return nil
}

func (a *Application) count(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	documents, syntaxErrors, err := a.newRunner(cfg, logging.Noop(), io.Discard, io.Discard).Load()
	if err != nil {
		return err
	}
	for _, syntaxError := range syntaxErrors {
		fmt.Fprintf(a.stderr, "syntax error in %s:%d\n", syntaxError.URI, syntaxError.Line)
	}

	plan := planner.Build(documents)
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tURI\tSCENARIOS\tOUTLINES\tROWS\tTOTAL")
	for _, feature := range plan.Features {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
			feature.Feature, feature.URI, feature.Scenarios, feature.Outlines, feature.Rows, feature.Total())
	}
	fmt.Fprintf(w, "total\t\t\t\t\t%d\n", plan.Total())
	return w.Flush()
}

func (a *Application) timings(_ context.Context, _ *cli.Command) error {
	content, err := io.ReadAll(a.stdin)
	if err != nil {
		return fmt.Errorf("could not read steps map: %w", err)
	}

	timings, err := report.ParseStepTimings(strings.TrimSpace(string(content)))
	if err != nil {
		return fmt.Errorf("could not parse steps map: %w", err)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSECONDS")
	var total float64
	for _, label := range timings.Labels() {
		d, _ := timings.Get(label)
		total += d.Seconds()
		fmt.Fprintf(w, "%s\t%.3f\n", label, d.Seconds())
	}
	fmt.Fprintf(w, "total\t%.3f\n", total)
	return w.Flush()
}

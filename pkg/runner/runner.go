package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"github.com/gofrs/uuid"

	"github.com/denizgursoy/cukestatus/pkg/config"
	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/executor"
	"github.com/denizgursoy/cukestatus/pkg/gherkin_parser"
	"github.com/denizgursoy/cukestatus/pkg/instrument"
	"github.com/denizgursoy/cukestatus/pkg/logging"
	"github.com/denizgursoy/cukestatus/pkg/planner"
	"github.com/denizgursoy/cukestatus/pkg/report"
	"github.com/denizgursoy/cukestatus/pkg/skipstore"
	"github.com/denizgursoy/cukestatus/pkg/snippet"
)

type (
	CucumberRunner struct {
		config             *config.Config
		featureDirectories []string
		executor           *executor.StepExecutor
		backend            Backend
		sink               report.Sink
		store              skipstore.Store
		logger             logging.Logger
		formatters         []events.Formatter
		clock              report.Clock
	}

	// Summary is the outcome of a run. Counts cover planned scenario
	// instances; outline aggregate results are not included.
	Summary struct {
		RunID        string
		Total        int
		Passed       int
		Errors       int
		Failures     int
		SyntaxErrors int
		Snippets     []string
	}
)

// Failed reports whether any scenario did not pass or any document could not
// be parsed.
func (s Summary) Failed() bool {
	return s.Errors > 0 || s.Failures > 0 || s.SyntaxErrors > 0
}

func NewCucumberRunner() *CucumberRunner {
	return &CucumberRunner{
		executor: executor.NewStepExecutor(),
	}
}

func (c *CucumberRunner) WithConfig(cfg *config.Config) *CucumberRunner {
	c.config = cfg

	return c
}

func (c *CucumberRunner) WithFeaturesDirectories(directories ...string) *CucumberRunner {
	c.featureDirectories = directories

	return c
}

// WithBackend replaces the step registry with backend. Steps and hooks
// registered on the runner are then ignored.
func (c *CucumberRunner) WithBackend(backend Backend) *CucumberRunner {
	c.backend = backend

	return c
}

// WithSink sets where status reports go. The default writes the status
// stream to stdout.
func (c *CucumberRunner) WithSink(sink report.Sink) *CucumberRunner {
	c.sink = sink

	return c
}

// WithSkipStore sets the store backing the skip flag. It takes precedence
// over the configured skip file.
func (c *CucumberRunner) WithSkipStore(store skipstore.Store) *CucumberRunner {
	c.store = store

	return c
}

func (c *CucumberRunner) WithLogger(logger logging.Logger) *CucumberRunner {
	c.logger = logger

	return c
}

// WithFormatter adds a formatter that receives every event after the
// reporter.
func (c *CucumberRunner) WithFormatter(formatter events.Formatter) *CucumberRunner {
	c.formatters = append(c.formatters, formatter)

	return c
}

func (c *CucumberRunner) WithClock(clock report.Clock) *CucumberRunner {
	c.clock = clock

	return c
}

func (c *CucumberRunner) RegisterStep(definition string, function any) *CucumberRunner {
	if err := c.executor.RegisterStep(definition, function); err != nil {
		panic(err)
	}

	return c
}

func (c *CucumberRunner) RegisterHook(phase executor.Phase, tags string, function executor.HookFunc) *CucumberRunner {
	if err := c.executor.RegisterHook(phase, tags, function); err != nil {
		panic(err)
	}

	return c
}

func (c *CucumberRunner) RegisterCustomType(name, underlying string, values map[string]string) *CucumberRunner {
	c.executor.RegisterCustomType(name, underlying, values)

	return c
}

// Load reads and filters the configured feature files. Syntax errors are
// returned alongside the documents that parsed.
func (c *CucumberRunner) Load() ([]*messages.GherkinDocument, []events.SyntaxError, error) {
	cfg := c.cfg()

	documents, syntaxErrors, err := gherkin_parser.LoadDocuments(c.paths())
	if err != nil {
		return nil, nil, err
	}

	var evaluator tagEvaluator
	if cfg.Tags != "" {
		expression, err := tagexpressions.Parse(cfg.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid tag expression %q: %w", cfg.Tags, err)
		}
		evaluator = expression
	}

	var namePattern *regexp.Regexp
	if cfg.Name != "" {
		namePattern, err = regexp.Compile(cfg.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid name pattern %q: %w", cfg.Name, err)
		}
	}

	filtered := make([]*messages.GherkinDocument, 0, len(documents))
	for _, document := range documents {
		document = filterDocumentByTags(document, evaluator)
		document = filterDocumentByName(document, namePattern)
		filtered = append(filtered, document)
	}

	return filtered, syntaxErrors, nil
}

// Run loads the features, reports every scenario instance to the sink and
// formatters, and writes the snippet file when one is configured.
func (c *CucumberRunner) Run(ctx context.Context) (Summary, error) {
	cfg := c.cfg()

	runID, err := uuid.NewV4()
	if err != nil {
		return Summary{}, fmt.Errorf("could not create run id: %w", err)
	}
	summary := Summary{RunID: runID.String()}
	logger := logging.With(c.log(), "run_id", summary.RunID)

	documents, syntaxErrors, err := c.Load()
	if err != nil {
		return summary, err
	}
	summary.SyntaxErrors = len(syntaxErrors)
	summary.Total = planner.CountScenarios(documents)
	logger.Info("run started", "features", len(documents), "total", summary.Total)

	flag := skipstore.NewFlag(c.skipStore(), cfg.DryRun, logger)

	sink := c.sink
	if sink == nil {
		sink = instrument.NewStreamSink(os.Stdout)
	}
	tally := instrument.NewTally()

	opts := []report.Option{
		report.WithSkipSignal(flag),
		report.WithLogger(logger),
		report.WithIdentifier(cfg.Identifier),
	}
	if c.clock != nil {
		opts = append(opts, report.WithClock(c.clock))
	}
	reporter := report.NewReporter(summary.Total, instrument.MultiSink{sink, tally}, opts...)

	formatter := events.NewMulti(append([]events.Formatter{reporter}, c.formatters...)...)
	defer formatter.Close()

	for _, syntaxError := range syntaxErrors {
		formatter.SyntaxError(syntaxError)
	}

	backend := c.backend
	if backend == nil {
		backend = c.executor
	}
	if err := NewReplayer(backend, formatter, flag, logger).Replay(ctx, documents); err != nil {
		return summary, err
	}

	summary.Passed = tally.Count(report.StatusOK)
	summary.Errors = tally.Count(report.StatusError)
	summary.Failures = tally.Count(report.StatusFailure)
	summary.Snippets = backend.Snippets()
	if failing, ok := sink.(sinkError); ok {
		if err := failing.Err(); err != nil {
			logger.Error("status stream broken", "error", err)
			return summary, err
		}
	}
	logger.Info("run finished",
		"total", summary.Total,
		"passed", summary.Passed,
		"errors", summary.Errors,
		"failures", summary.Failures,
		"syntax_errors", summary.SyntaxErrors,
	)

	if cfg.Snippets != "" {
		if err := c.writeSnippets(cfg.Snippets, backend, logger); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// sinkError is implemented by sinks that keep their first write error.
type sinkError interface {
	Err() error
}

type undefinedSteps interface {
	UndefinedSteps() []string
}

func (c *CucumberRunner) writeSnippets(path string, backend Backend, logger logging.Logger) error {
	source, ok := backend.(undefinedSteps)
	if !ok {
		logger.Warn("backend does not list undefined steps, snippet file not written", "path", path)
		return nil
	}
	texts := source.UndefinedSteps()
	if len(texts) == 0 {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create snippet directory %s: %w", dir, err)
	}
	target, err := snippet.ResolveTarget(path)
	if err != nil {
		logger.Debug("could not resolve snippet package", "path", path, "error", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create snippet file %s: %w", path, err)
	}
	defer file.Close()

	if err := snippet.WriteFile(file, target.Package, texts); err != nil {
		return fmt.Errorf("could not write snippet file %s: %w", path, err)
	}
	logger.Info("snippets written", "path", path, "package", target.Package, "import_path", target.ImportPath, "count", len(texts))
	return nil
}

func (c *CucumberRunner) cfg() *config.Config {
	if c.config == nil {
		return &config.Config{}
	}
	return c.config
}

func (c *CucumberRunner) paths() []string {
	if len(c.featureDirectories) > 0 {
		return c.featureDirectories
	}
	if features := c.cfg().Features; len(features) > 0 {
		return features
	}
	return []string{"."}
}

func (c *CucumberRunner) log() logging.Logger {
	if c.logger == nil || c.cfg().DisableLog {
		return logging.Noop()
	}
	return c.logger
}

func (c *CucumberRunner) skipStore() skipstore.Store {
	if c.store != nil {
		return c.store
	}
	if path := c.cfg().SkipFile; path != "" {
		return skipstore.NewFileStore(path)
	}
	return skipstore.NewMemoryStore(false)
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/executor"
	"github.com/denizgursoy/cukestatus/pkg/logging"
	"github.com/denizgursoy/cukestatus/pkg/report"
)

const (
	hookKeyword = "Hook"
	beforeHook  = "before scenario"
	afterHook   = "after scenario"
)

// Replayer walks parsed documents and reports every scenario instance to a
// formatter, executing steps through a Backend unless the skip signal is
// active.
type Replayer struct {
	backend   Backend
	formatter events.Formatter
	skip      report.SkipSignal
	logger    logging.Logger
}

// NewReplayer creates a replayer. A nil skip signal never skips and a nil
// logger discards.
func NewReplayer(backend Backend, formatter events.Formatter, skip report.SkipSignal, logger logging.Logger) *Replayer {
	if skip == nil {
		skip = neverSkip{}
	}
	if logger == nil {
		logger = logging.Noop()
	}
	return &Replayer{
		backend:   backend,
		formatter: formatter,
		skip:      skip,
		logger:    logger,
	}
}

// Replay reports each document in order and finishes with Done. It stops
// between scenarios when ctx is cancelled.
func (r *Replayer) Replay(ctx context.Context, documents []*messages.GherkinDocument) error {
	for _, document := range documents {
		if document == nil || document.Feature == nil {
			continue
		}
		if err := r.replayDocument(ctx, document); err != nil {
			return err
		}
	}
	r.formatter.Done()
	return nil
}

// instance is one runnable scenario or outline row.
type instance struct {
	uri         string
	event       events.Scenario
	backgrounds []*messages.Background
	steps       []*messages.Step
	values      map[string]string
}

func (r *Replayer) replayDocument(ctx context.Context, document *messages.GherkinDocument) error {
	feature := document.Feature
	r.formatter.URI(document.Uri)
	r.formatter.Feature(events.Feature{
		Keyword:     feature.Keyword,
		Name:        feature.Name,
		Description: strings.TrimSpace(feature.Description),
		Tags:        extractTagNames(feature.Tags),
	})
	defer r.formatter.EOF()

	featureTags := extractTagNames(feature.Tags)
	var featureBackground *messages.Background

	for _, child := range feature.Children {
		switch {
		case child.Background != nil:
			featureBackground = child.Background

		case child.Scenario != nil:
			if err := r.replayScenario(ctx, document.Uri, child.Scenario, featureTags, featureBackground); err != nil {
				return err
			}

		case child.Rule != nil:
			ruleTags := mergeTags(featureTags, extractTagNames(child.Rule.Tags))
			var ruleBackground *messages.Background
			for _, ruleChild := range child.Rule.Children {
				if ruleChild.Background != nil {
					ruleBackground = ruleChild.Background
					continue
				}
				if ruleChild.Scenario == nil {
					continue
				}
				if err := r.replayScenario(ctx, document.Uri, ruleChild.Scenario, ruleTags, featureBackground, ruleBackground); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (r *Replayer) replayScenario(ctx context.Context, uri string, scenario *messages.Scenario, inherited []string, backgrounds ...*messages.Background) error {
	tags := mergeTags(inherited, extractTagNames(scenario.Tags))
	event := events.Scenario{
		Kind:        events.KindScenario,
		Keyword:     scenario.Keyword,
		Name:        scenario.Name,
		Description: strings.TrimSpace(scenario.Description),
		Tags:        tags,
		Line:        lineOf(scenario.Location),
	}

	if len(scenario.Examples) == 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay cancelled: %w", err)
		}
		r.formatter.Scenario(event)
		r.run(ctx, instance{uri: uri, event: event, backgrounds: backgrounds, steps: scenario.Steps})
		return nil
	}

	outline := event
	outline.Kind = events.KindOutline
	r.formatter.ScenarioOutline(outline)

	for _, examples := range scenario.Examples {
		rows := len(examples.TableBody)
		if examples.TableHeader != nil {
			rows++
		}
		r.formatter.Examples(events.Examples{
			Keyword: examples.Keyword,
			Name:    examples.Name,
			Rows:    rows,
			Line:    lineOf(examples.Location),
		})

		for _, row := range examples.TableBody {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("replay cancelled: %w", err)
			}

			values := rowValues(examples.TableHeader, row)
			rowEvent := event
			rowEvent.Kind = events.KindExample
			rowEvent.Name = substitute(scenario.Name, values)
			rowEvent.Tags = mergeTags(tags, extractTagNames(examples.Tags))
			rowEvent.Line = lineOf(row.Location)

			r.formatter.Scenario(rowEvent)
			r.run(ctx, instance{uri: uri, event: rowEvent, backgrounds: backgrounds, steps: scenario.Steps, values: values})
		}
	}
	return nil
}

// run reports the steps of one instance. Execution halts at the first step
// that does not pass; later steps are reported skipped.
func (r *Replayer) run(ctx context.Context, inst instance) {
	dryRun := r.skip.Skipped()
	hookScenario := executor.Scenario{URI: inst.uri, Name: inst.event.Name, Line: inst.event.Line, Tags: inst.event.Tags}

	var scenarioErr error
	halted := false

	if !dryRun {
		next, err := r.backend.RunBeforeScenario(ctx, hookScenario)
		if next != nil {
			ctx = next
		}
		if err != nil {
			r.reportHook(inst, beforeHook, err)
			scenarioErr = err
			halted = true
		}
	}

	for _, background := range inst.backgrounds {
		if background == nil {
			continue
		}
		r.formatter.Background(events.Background{Keyword: background.Keyword, Name: background.Name})
		for _, step := range background.Steps {
			ctx, halted, scenarioErr = r.step(ctx, inst, step, dryRun, halted, scenarioErr)
		}
	}

	for _, step := range inst.steps {
		ctx, halted, scenarioErr = r.step(ctx, inst, step, dryRun, halted, scenarioErr)
	}

	if !dryRun {
		if _, err := r.backend.RunAfterScenario(ctx, hookScenario, scenarioErr); err != nil {
			r.reportHook(inst, afterHook, err)
		}
	}
}

func (r *Replayer) step(ctx context.Context, inst instance, step *messages.Step, dryRun, halted bool, scenarioErr error) (context.Context, bool, error) {
	text := substitute(step.Text, inst.values)
	r.formatter.Step(events.Step{
		Keyword: step.Keyword,
		Text:    text,
		URI:     inst.uri,
		Line:    lineOf(step.Location),
	})

	switch {
	case halted:
		r.formatter.Result(events.Result{Status: events.StepSkipped})
		return ctx, halted, scenarioErr

	case dryRun:
		if r.backend.Defined(text) {
			r.formatter.Result(events.Result{Status: events.StepSkipped})
		} else {
			r.formatter.Result(events.Result{Status: events.StepUndefined, Snippets: r.backend.Snippets()})
		}
		return ctx, halted, scenarioErr
	}

	next, err := r.backend.RunStep(ctx, text)
	if next != nil {
		ctx = next
	}

	switch {
	case err == nil:
		r.formatter.Result(events.Result{Status: events.StepPassed})
		return ctx, false, scenarioErr
	case errors.Is(err, executor.ErrUndefined):
		r.logger.Debug("undefined step", "uri", inst.uri, "step", text)
		r.formatter.Result(events.Result{Status: events.StepUndefined, Snippets: r.backend.Snippets()})
	case errors.Is(err, executor.ErrPending):
		r.formatter.Result(events.Result{Status: events.StepPending, Error: err})
	default:
		r.formatter.Result(events.Result{Status: events.StepFailed, Error: err})
	}

	if scenarioErr == nil {
		scenarioErr = err
	}
	return ctx, true, scenarioErr
}

func (r *Replayer) reportHook(inst instance, name string, err error) {
	r.logger.Warn("hook failed", "uri", inst.uri, "scenario", inst.event.Name, "hook", name, "error", err)
	r.formatter.Step(events.Step{Keyword: hookKeyword, Text: name, URI: inst.uri, Line: inst.event.Line})
	r.formatter.Result(events.Result{Status: events.StepFailed, Error: err})
}

func rowValues(header, row *messages.TableRow) map[string]string {
	values := make(map[string]string)
	if header == nil || row == nil {
		return values
	}
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			values[cell.Value] = row.Cells[i].Value
		}
	}
	return values
}

// substitute replaces <name> placeholders with row values.
func substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "<"+name+">", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func lineOf(location *messages.Location) int64 {
	if location == nil {
		return 0
	}
	return location.Line
}

type neverSkip struct{}

func (neverSkip) Skipped() bool { return false }
func (neverSkip) MarkSkip()     {}

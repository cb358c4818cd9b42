// Package report aggregates execution events into host status reports.
//
// A Reporter tracks the current scenario record, times its steps, maps step
// outcomes onto the record status and emits start and result reports in the
// order the host collector expects. Outline rows are reconciled into their
// outline's aggregate record: a failing row fails the outline immediately,
// otherwise the outline result is sent with its last row.
//
// A Reporter is not safe for concurrent use; events must arrive from a
// single goroutine in document order.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/logging"
)

// ErrNoCurrentRecord is the panic value when a step or result arrives before
// any scenario.
var ErrNoCurrentRecord = errors.New("no current scenario record")

const pendingMessage = "TODO: implement me"

var classReplacer = strings.NewReplacer(" - ", ". ", "_", ". ")

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock sets the clock used for step timing.
func WithClock(clock Clock) Option {
	return func(r *Reporter) {
		r.timer = NewStepTimer(clock)
	}
}

// WithSkipSignal sets the run-wide skip signal.
func WithSkipSignal(skip SkipSignal) Option {
	return func(r *Reporter) {
		r.skip = skip
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// WithIdentifier overrides the protocol tag sent with every report.
func WithIdentifier(identifier string) Option {
	return func(r *Reporter) {
		r.identifier = identifier
	}
}

// Logger is the logging interface used by the reporter.
type Logger = logging.Logger

// Reporter converts the event sequence into status reports. It implements
// events.Formatter.
type Reporter struct {
	sink       Sink
	identifier string
	total      int

	emitter  *Emitter
	timer    *StepTimer
	snippets *SnippetDeduplicator
	skip     SkipSignal
	logger   Logger

	uri      string
	feature  events.Feature
	step     *events.Step
	current  *Record
	parent   *Record
	sequence int
}

var _ events.Formatter = (*Reporter)(nil)

// NewReporter creates a reporter for a run with total runnable scenario
// instances.
func NewReporter(total int, sink Sink, opts ...Option) *Reporter {
	r := &Reporter{
		sink:     sink,
		total:    total,
		snippets: NewSnippetDeduplicator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.timer == nil {
		r.timer = NewStepTimer(nil)
	}
	if r.skip == nil {
		r.skip = &memorySkip{}
	}
	if r.logger == nil {
		r.logger = logging.Noop()
	}
	r.emitter = NewEmitter(sink, r.identifier, total)
	return r
}

// Total returns the planned number of scenario instances.
func (r *Reporter) Total() int {
	return r.total
}

func (r *Reporter) URI(uri string) {
	r.uri = uri
}

func (r *Reporter) Feature(feature events.Feature) {
	r.feature = feature
}

func (r *Reporter) Background(events.Background) {}

// Scenario closes the current record and opens one for scenario.
func (r *Reporter) Scenario(scenario events.Scenario) {
	r.closeCurrent()
	r.begin(scenario)
}

// ScenarioOutline closes the current record and opens a fresh outline
// aggregate that following rows report into.
func (r *Reporter) ScenarioOutline(outline events.Scenario) {
	r.closeCurrent()
	r.parent = nil
	outline.Kind = events.KindOutline
	r.begin(outline)
	r.parent = r.current
}

// Examples adds the table's runnable rows to the current outline.
func (r *Reporter) Examples(examples events.Examples) {
	if r.parent == nil {
		return
	}
	if rows := examples.Rows - 1; rows > 0 {
		r.parent.ExampleRows += rows
	}
}

// Step starts timing step within the current record.
func (r *Reporter) Step(step events.Step) {
	rec := r.mustCurrent("step")
	r.step = &step
	r.timer.Start(rec.Timings, step.Label())
}

// Result applies the outcome of the preceding step to the current record.
func (r *Reporter) Result(result events.Result) {
	rec := r.mustCurrent("result")
	r.timer.Stop()

	switch result.Status {
	case events.StepFailed, events.StepPending:
		message := result.ErrorMessage()
		if message == "" && result.Status == events.StepPending {
			message = pendingMessage
		}
		rec.fail(StatusFailure, message, message)

	case events.StepUndefined:
		fresh := r.snippets.New(result.Snippets)
		rec.fail(StatusError, r.missingStepReport(fresh), fmt.Sprintf("Missing step-definition: %s", r.stepText()))
		r.skip.MarkSkip()
	}
}

func (r *Reporter) SyntaxError(syntaxError events.SyntaxError) {
	r.logger.Debug("syntax error reported", "uri", syntaxError.URI, "line", syntaxError.Line)
}

// EOF closes the last record of the document.
func (r *Reporter) EOF() {
	r.closeCurrent()
	r.current = nil
	r.parent = nil
	r.step = nil
}

func (r *Reporter) Done() {}

func (r *Reporter) Close() {}

func (r *Reporter) mustCurrent(event string) *Record {
	if r.current == nil || r.current.closed {
		panic(fmt.Errorf("%w: %s event", ErrNoCurrentRecord, event))
	}
	return r.current
}

func (r *Reporter) begin(scenario events.Scenario) {
	if r.parent != nil && (scenario.Kind != events.KindExample || !belongsToOutline(scenario.Name, r.parent)) {
		r.logger.Debug("scenario left outline", "scenario", scenario.Name, "outline", r.parent.Test)
		r.parent = nil
	}

	r.sequence++
	r.current = newRecord(r.sequence, r.displayClass(), scenario)
	r.step = nil
	r.emitter.Start(r.current)
}

func (r *Reporter) displayClass() string {
	return classReplacer.Replace(fmt.Sprintf("%s: %s", r.feature.Keyword, r.feature.Name))
}

func (r *Reporter) closeCurrent() {
	rec := r.current
	if rec == nil || rec.closed {
		return
	}

	r.timer.Stop()
	rec.closed = true
	if rec.Status == StatusOK {
		rec.StreamResult = "."
	}
	if r.skip.Skipped() {
		rec.Skipped = true
	}

	if rec.Kind != events.KindOutline {
		r.emit(rec)
	}
	r.propagate(rec)
}

// propagate reports a closed row onto its outline record.
func (r *Reporter) propagate(child *Record) {
	parent := r.parent
	if parent == nil || parent == child || r.emitter.Emitted(parent) {
		return
	}

	if child.Status == StatusFailure {
		parent.Status = StatusFailure
		parent.Stack = fmt.Sprintf("%s.\n Error - %s", child.Test, child.Stack)
		parent.StreamResult = child.StreamResult
		r.finishParent(parent)
		return
	}

	if child.Status == StatusError && parent.Status == StatusOK {
		parent.Status = StatusError
		parent.Stack = fmt.Sprintf("%s.\n Error - %s", child.Test, child.Stack)
		parent.StreamResult = child.StreamResult
	}

	if child.Sequence == parent.LastRow() {
		if parent.Status == StatusOK {
			parent.StreamResult = "."
		}
		r.finishParent(parent)
	}
}

func (r *Reporter) finishParent(parent *Record) {
	parent.closed = true
	if r.skip.Skipped() {
		parent.Skipped = true
	}
	r.emit(parent)
}

func (r *Reporter) emit(rec *Record) {
	if err := r.emitter.Result(rec); err != nil {
		r.logger.Warn("result not sent", "current", rec.Sequence, "error", err)
		return
	}
	r.logger.Debug("result sent", "current", rec.Sequence, "status", rec.Status.String(), "test", rec.Test)
}

func (r *Reporter) stepText() string {
	if r.step == nil {
		return ""
	}
	return r.step.Text
}

func (r *Reporter) stepLocation() string {
	if r.step == nil {
		return "<unknown step>"
	}
	uri := r.step.URI
	if uri == "" {
		uri = r.uri
	}
	return fmt.Sprintf("%s(%s:%d)", r.step.Label(), uri, r.step.Line)
}

func (r *Reporter) missingStepReport(snippets []string) string {
	plural := "s"
	if len(snippets) == 1 {
		plural = ""
	}
	return fmt.Sprintf(
		"\n/*\n* Missing step-definition%s: \n* Feature: '%s'\n*\n* Step: \n* %s \n*/\n\n%s",
		plural,
		r.feature.Name,
		r.stepLocation(),
		strings.Join(snippets, "\n"),
	)
}

// memorySkip is the skip signal used when none is configured.
type memorySkip struct {
	skipped bool
}

func (m *memorySkip) Skipped() bool { return m.skipped }
func (m *memorySkip) MarkSkip()     { m.skipped = true }

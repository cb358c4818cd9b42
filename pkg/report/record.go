package report

import "github.com/denizgursoy/cukestatus/pkg/events"

// StatusCode is the code sent to the host alongside a report.
type StatusCode int

const (
	// StatusStart announces that a test instance started.
	StatusStart StatusCode = 1
	// StatusOK is a passed result.
	StatusOK StatusCode = 0
	// StatusError is a result with an undefined step.
	StatusError StatusCode = -1
	// StatusFailure is a result with a failing step.
	StatusFailure StatusCode = -2
)

// String returns a human-readable label for the status code.
func (c StatusCode) String() string {
	switch c {
	case StatusStart:
		return "start"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Terminal reports whether the code is Error or Failure.
func (c StatusCode) Terminal() bool {
	return c == StatusError || c == StatusFailure
}

// Record is the result of one runnable scenario instance, or the aggregate
// of an outline.
type Record struct {
	// Sequence is assigned at creation, 1-based and strictly increasing.
	Sequence int

	// Class is derived from the enclosing feature, e.g. "Feature: Math".
	Class string

	// Test is the display name, e.g. "Scenario: Add two numbers".
	Test string

	Keyword string
	Kind    events.ScenarioKind

	// Name is the raw scenario name used for outline association.
	Name string

	Status       StatusCode
	Stack        string
	StreamResult string
	Skipped      bool

	// ExampleRows is the number of runnable rows under an outline record.
	ExampleRows int

	Timings *StepTimings

	closed bool
}

func newRecord(sequence int, class string, scenario events.Scenario) *Record {
	return &Record{
		Sequence:     sequence,
		Class:        class,
		Test:         displayName(scenario.Keyword, scenario.Name),
		Keyword:      scenario.Keyword,
		Kind:         scenario.Kind,
		Name:         scenario.Name,
		Status:       StatusOK,
		StreamResult: "\n" + class + ":",
		Timings:      NewStepTimings(),
	}
}

// fail applies a terminal status unless the record already has one.
func (r *Record) fail(code StatusCode, stack, stream string) bool {
	if r.Status.Terminal() {
		return false
	}
	r.Status = code
	r.Stack = stack
	r.StreamResult = stream
	return true
}

// LastRow is the sequence number of the final row of an outline record.
func (r *Record) LastRow() int {
	return r.Sequence + r.ExampleRows
}

func displayName(keyword, name string) string {
	return keyword + ": " + name
}

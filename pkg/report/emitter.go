package report

import (
	"errors"
	"fmt"
)

// DefaultIdentifier tags every report sent by this reporter.
const DefaultIdentifier = "InstrumentationTestRunner"

// ErrAlreadyEmitted is returned when a record's result was already sent.
var ErrAlreadyEmitted = errors.New("record result already emitted")

// Report is one status row for the host collector.
type Report struct {
	Identifier   string
	NumTotal     int
	Current      int
	Class        string
	Test         string
	Keyword      string
	Examples     int
	Stack        string
	Steps        string
	StreamResult string
	Skipped      bool
}

// Emitter turns records into reports. Results are sent at most once per
// record.
type Emitter struct {
	sink       Sink
	identifier string
	total      int
	emitted    map[int]bool
}

// NewEmitter creates an emitter that attaches total to every report.
func NewEmitter(sink Sink, identifier string, total int) *Emitter {
	if identifier == "" {
		identifier = DefaultIdentifier
	}
	return &Emitter{
		sink:       sink,
		identifier: identifier,
		total:      total,
		emitted:    make(map[int]bool),
	}
}

// Start sends the "test started" notification for rec.
func (e *Emitter) Start(rec *Record) {
	e.sink.SendStatus(StatusStart, e.base(rec))
}

// Result sends the final status of rec.
func (e *Emitter) Result(rec *Record) error {
	if e.emitted[rec.Sequence] {
		return fmt.Errorf("%w: %d", ErrAlreadyEmitted, rec.Sequence)
	}
	e.emitted[rec.Sequence] = true

	report := e.base(rec)
	report.Stack = rec.Stack
	report.Skipped = rec.Skipped
	if rec.Timings != nil && rec.Timings.Len() > 0 {
		report.Steps = FormatStepTimings(rec.Timings)
	}

	e.sink.SendStatus(rec.Status, report)
	return nil
}

// Emitted reports whether the result of rec was sent.
func (e *Emitter) Emitted(rec *Record) bool {
	return e.emitted[rec.Sequence]
}

func (e *Emitter) base(rec *Record) Report {
	return Report{
		Identifier:   e.identifier,
		NumTotal:     e.total,
		Current:      rec.Sequence,
		Class:        rec.Class,
		Test:         rec.Test,
		Keyword:      rec.Keyword,
		Examples:     rec.ExampleRows,
		StreamResult: rec.StreamResult,
	}
}

package instrument

import (
	"sync"

	"github.com/denizgursoy/cukestatus/pkg/report"
)

type (
	// SinkFunc adapts a function to report.Sink.
	SinkFunc func(code report.StatusCode, r report.Report)

	// MultiSink sends every status to each of its sinks in order.
	MultiSink []report.Sink

	// Status is one status received by a Recorder.
	Status struct {
		Code   report.StatusCode
		Report report.Report
	}

	// Recorder keeps every status it receives.
	Recorder struct {
		mu       sync.Mutex
		statuses []Status
	}

	// Tally counts results of planned scenario instances by status code.
	// Start notifications and outline aggregates (reports carrying an
	// examples count) are not counted.
	Tally struct {
		mu     sync.Mutex
		counts map[report.StatusCode]int
	}
)

var (
	_ report.Sink = SinkFunc(nil)
	_ report.Sink = MultiSink(nil)
	_ report.Sink = (*Recorder)(nil)
	_ report.Sink = (*Tally)(nil)
)

func (f SinkFunc) SendStatus(code report.StatusCode, r report.Report) {
	f(code, r)
}

func (m MultiSink) SendStatus(code report.StatusCode, r report.Report) {
	for _, sink := range m {
		if sink != nil {
			sink.SendStatus(code, r)
		}
	}
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{statuses: make([]Status, 0)}
}

func (r *Recorder) SendStatus(code report.StatusCode, rep report.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, Status{Code: code, Report: rep})
}

// Statuses returns a copy of everything received so far.
func (r *Recorder) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// Results returns the received statuses that are not start notifications.
func (r *Recorder) Results() []Status {
	out := make([]Status, 0)
	for _, status := range r.Statuses() {
		if status.Code != report.StatusStart {
			out = append(out, status)
		}
	}
	return out
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[report.StatusCode]int)}
}

func (t *Tally) SendStatus(code report.StatusCode, r report.Report) {
	if code == report.StatusStart || r.Examples > 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[code]++
}

// Count returns the number of results with code.
func (t *Tally) Count(code report.StatusCode) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[code]
}

// Total returns the number of results.
func (t *Tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

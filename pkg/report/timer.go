package report

import "time"

// Clock supplies instants for step timing.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// systemClock uses time.Now; the monotonic reading it carries keeps
// differences correct across wall clock adjustments.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// StepTimer measures one step at a time and adds the elapsed time to the
// timings it was started with.
type StepTimer struct {
	clock   Clock
	timings *StepTimings
	label   string
	started time.Time
	running bool
}

// NewStepTimer creates a timer. A nil clock uses the system clock.
func NewStepTimer(clock Clock) *StepTimer {
	if clock == nil {
		clock = systemClock{}
	}
	return &StepTimer{clock: clock}
}

// Start stops any running measurement, touches label in timings and starts
// measuring it.
func (t *StepTimer) Start(timings *StepTimings, label string) {
	t.Stop()
	timings.Touch(label)
	t.timings = timings
	t.label = label
	t.started = t.clock.Now()
	t.running = true
}

// Stop adds the time since Start to the running label. It is a no-op when
// nothing is running.
func (t *StepTimer) Stop() {
	if !t.running {
		return
	}
	elapsed := t.clock.Now().Sub(t.started)
	if elapsed < 0 {
		elapsed = 0
	}
	t.timings.Add(t.label, elapsed)
	t.running = false
	t.timings = nil
}

// Running reports whether a step is being measured.
func (t *StepTimer) Running() bool {
	return t.running
}

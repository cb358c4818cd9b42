package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const timingSeparator = "\t-\t"

// StepTimings accumulates elapsed time per step label. Labels keep the order
// in which they were first touched; touching a label again adds to it.
type StepTimings struct {
	labels    []string
	durations map[string]time.Duration
}

// NewStepTimings creates an empty accumulator.
func NewStepTimings() *StepTimings {
	return &StepTimings{durations: make(map[string]time.Duration)}
}

// Touch inserts label with zero duration if it is not present yet.
func (s *StepTimings) Touch(label string) {
	if _, ok := s.durations[label]; ok {
		return
	}
	s.labels = append(s.labels, label)
	s.durations[label] = 0
}

// Add sums d into the entry for label.
func (s *StepTimings) Add(label string, d time.Duration) {
	s.Touch(label)
	s.durations[label] += d
}

// Get returns the accumulated duration for label.
func (s *StepTimings) Get(label string) (time.Duration, bool) {
	d, ok := s.durations[label]
	return d, ok
}

// Labels returns the labels in first-touch order.
func (s *StepTimings) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Len returns the number of distinct labels.
func (s *StepTimings) Len() int {
	return len(s.labels)
}

// FormatStepTimings serializes timings as one "label\t-\tseconds" line per
// entry wrapped in braces.
func FormatStepTimings(s *StepTimings) string {
	var b strings.Builder
	b.WriteString("{\n")
	if s != nil {
		for _, label := range s.labels {
			b.WriteString(label)
			b.WriteString(timingSeparator)
			b.WriteString(strconv.FormatFloat(s.durations[label].Seconds(), 'f', -1, 64))
			b.WriteString("\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

// ParseStepTimings reads the format written by FormatStepTimings. The entry
// order of the input is preserved.
func ParseStepTimings(serialized string) (*StepTimings, error) {
	timings := NewStepTimings()

	for i, line := range strings.Split(serialized, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || line == "{" || line == "}" {
			continue
		}

		idx := strings.LastIndex(line, timingSeparator)
		if idx < 0 {
			return nil, fmt.Errorf("line %d: missing separator in %q", i+1, line)
		}

		label := line[:idx]
		seconds, err := strconv.ParseFloat(strings.TrimSpace(line[idx+len(timingSeparator):]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid duration: %w", i+1, err)
		}

		timings.Add(label, time.Duration(math.Round(seconds*float64(time.Second))))
	}

	return timings, nil
}

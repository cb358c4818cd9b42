// Package instrument delivers status reports to the host in the
// "am instrument" raw status format.
package instrument

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/denizgursoy/cukestatus/pkg/report"
)

const (
	statusPrefix = "INSTRUMENTATION_STATUS: "
	codePrefix   = "INSTRUMENTATION_STATUS_CODE: "
)

// Status keys.
const (
	KeyID       = "id"
	KeyNumTests = "numtests"
	KeyCurrent  = "current"
	KeyClass    = "class"
	KeyTest     = "test"
	KeyKeyword  = "keyword"
	KeyExamples = "examples"
	KeyStack    = "stack"
	KeySteps    = "steps"
	KeyStream   = "stream"
	KeySkipped  = "skipped"
)

// StreamSink writes every status as key=value lines followed by the status
// code line. It is safe for concurrent use; the first write error is kept
// and later statuses are dropped.
type StreamSink struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

var _ report.Sink = (*StreamSink)(nil)

// NewStreamSink creates a sink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// SendStatus writes one status block.
func (s *StreamSink) SendStatus(code report.StatusCode, r report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	for _, field := range Fields(r) {
		if _, err := fmt.Fprintf(s.w, "%s%s=%s\n", statusPrefix, field.Key, field.Value); err != nil {
			s.err = fmt.Errorf("could not write status: %w", err)
			return
		}
	}
	if _, err := fmt.Fprintf(s.w, "%s%d\n", codePrefix, int(code)); err != nil {
		s.err = fmt.Errorf("could not write status code: %w", err)
	}
}

// Err returns the first write error.
func (s *StreamSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Field is one key=value pair of a status.
type Field struct {
	Key   string
	Value string
}

// Fields lists the keys of r in wire order. Optional keys are left out when
// empty.
func Fields(r report.Report) []Field {
	fields := []Field{
		{KeyID, r.Identifier},
		{KeyNumTests, strconv.Itoa(r.NumTotal)},
		{KeyCurrent, strconv.Itoa(r.Current)},
		{KeyClass, r.Class},
		{KeyTest, r.Test},
	}
	if r.Keyword != "" {
		fields = append(fields, Field{KeyKeyword, r.Keyword})
	}
	if r.Examples > 0 {
		fields = append(fields, Field{KeyExamples, strconv.Itoa(r.Examples)})
	}
	if r.Stack != "" {
		fields = append(fields, Field{KeyStack, r.Stack})
	}
	if r.Steps != "" {
		fields = append(fields, Field{KeySteps, r.Steps})
	}
	fields = append(fields, Field{KeyStream, r.StreamResult})
	if r.Skipped {
		fields = append(fields, Field{KeySkipped, "true"})
	}
	return fields
}

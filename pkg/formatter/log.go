// Package formatter renders the replayed event stream for humans.
package formatter

import (
	"fmt"

	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/logging"
)

// LogFormatter writes one debug line per document element and an error line
// per syntax error.
type LogFormatter struct {
	logger logging.Logger
	uri    string
}

var _ events.Formatter = (*LogFormatter)(nil)

// NewLogFormatter creates a formatter writing to logger.
func NewLogFormatter(logger logging.Logger) *LogFormatter {
	if logger == nil {
		logger = logging.Noop()
	}
	return &LogFormatter{logger: logger}
}

func (f *LogFormatter) URI(uri string) {
	f.uri = uri
}

func (f *LogFormatter) Feature(feature events.Feature) {
	f.logger.Debug(fmt.Sprintf("%s: %s (%s)\n%s", feature.Keyword, feature.Name, f.uri, feature.Description))
}

func (f *LogFormatter) Background(background events.Background) {
	f.logger.Debug(background.Name)
}

func (f *LogFormatter) Scenario(scenario events.Scenario) {
	f.logger.Debug(fmt.Sprintf("%s: %s", scenario.Keyword, scenario.Name))
}

func (f *LogFormatter) ScenarioOutline(outline events.Scenario) {
	f.logger.Debug(fmt.Sprintf("%s: %s", outline.Keyword, outline.Name))
}

func (f *LogFormatter) Examples(examples events.Examples) {
	f.logger.Debug(fmt.Sprintf("%s: %s (#%d)", examples.Keyword, examples.Name, examples.Rows))
}

func (f *LogFormatter) Step(step events.Step) {
	f.logger.Debug(step.Keyword + step.Text)
}

func (f *LogFormatter) Result(events.Result) {}

func (f *LogFormatter) SyntaxError(syntaxError events.SyntaxError) {
	f.logger.Error(fmt.Sprintf("syntax error '%s' %s:%d", syntaxError.Message, syntaxError.URI, syntaxError.Line))
}

func (f *LogFormatter) EOF() {}

func (f *LogFormatter) Done() {}

func (f *LogFormatter) Close() {}

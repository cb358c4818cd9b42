package formatter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/logging"
)

func newObservedLogFormatter() (*LogFormatter, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogFormatter(logging.FromZap(zap.New(core))), logs
}

func TestLogFormatter(t *testing.T) {
	t.Run("should log a line per element", func(t *testing.T) {
		f, logs := newObservedLogFormatter()

		f.URI("features/math.feature")
		f.Feature(events.Feature{Keyword: "Feature", Name: "Math", Description: "  adds numbers"})
		f.Background(events.Background{Keyword: "Background", Name: "calculator"})
		f.ScenarioOutline(events.Scenario{Keyword: "Scenario Outline", Name: "add <a>"})
		f.Examples(events.Examples{Keyword: "Examples", Name: "small", Rows: 3})
		f.Scenario(events.Scenario{Keyword: "Scenario Outline", Name: "add 1"})
		f.Step(events.Step{Keyword: "Given ", Text: "I have 1"})
		f.Result(events.Result{Status: events.StepPassed})
		f.EOF()
		f.Done()
		f.Close()

		var messages []string
		for _, entry := range logs.All() {
			require.Equal(t, zapcore.DebugLevel, entry.Level)
			messages = append(messages, entry.Message)
		}
		require.Equal(t, []string{
			"Feature: Math (features/math.feature)\n  adds numbers",
			"calculator",
			"Scenario Outline: add <a>",
			"Examples: small (#3)",
			"Scenario Outline: add 1",
			"Given I have 1",
		}, messages)
	})

	t.Run("should log syntax errors at error level", func(t *testing.T) {
		f, logs := newObservedLogFormatter()

		f.SyntaxError(events.SyntaxError{URI: "features/broken.feature", Message: "unexpected end of file", Line: 6})

		entries := logs.All()
		require.Len(t, entries, 1)
		require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		require.Equal(t, "syntax error 'unexpected end of file' features/broken.feature:6", entries[0].Message)
	})

	t.Run("should fall back to a noop logger", func(t *testing.T) {
		f := NewLogFormatter(nil)
		require.NotPanics(t, func() {
			f.Feature(events.Feature{Name: "x"})
		})
	})
}

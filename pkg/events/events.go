// Package events defines the callback sequence a document replay produces.
// Order matches document order and a Result always follows the Step it concludes.
package events

import "strings"

// StepStatus is the raw outcome reported for a step.
type StepStatus int

const (
	// StepPassed indicates the step executed successfully.
	StepPassed StepStatus = iota
	// StepFailed indicates the step returned an error or panicked.
	StepFailed
	// StepUndefined indicates no step definition matched the step text.
	StepUndefined
	// StepPending indicates the step definition is not implemented yet.
	StepPending
	// StepSkipped indicates the step was not executed.
	StepSkipped
)

// String returns a human-readable label for the step status.
func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepUndefined:
		return "undefined"
	case StepPending:
		return "pending"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ScenarioKind tells a plain scenario apart from an outline and its rows.
type ScenarioKind int

const (
	// KindScenario is an individual scenario.
	KindScenario ScenarioKind = iota
	// KindOutline is the outline template itself.
	KindOutline
	// KindExample is one instantiated row of an outline's examples table.
	KindExample
)

type (
	// Feature is the top-level named unit of a document.
	Feature struct {
		Keyword     string
		Name        string
		Description string
		Tags        []string
	}

	// Background holds the shared setup section of a feature or rule.
	Background struct {
		Keyword string
		Name    string
	}

	// Scenario describes a scenario, an outline, or one outline row.
	// For rows, Name has the row values substituted and Keyword is the
	// outline keyword.
	Scenario struct {
		Kind        ScenarioKind
		Keyword     string
		Name        string
		Description string
		Tags        []string
		Line        int64
	}

	// Examples describes an examples table under an outline.
	// Rows counts every table row including the header.
	Examples struct {
		Keyword string
		Name    string
		Rows    int
		Line    int64
	}

	// Step is one line of a scenario.
	Step struct {
		Keyword string
		Text    string
		URI     string
		Line    int64
	}

	// Result concludes the preceding Step.
	Result struct {
		Status StepStatus

		// Error is set for failed and pending steps.
		Error error

		// Snippets is the full list of implementation snippets generated so
		// far in the run. Only meaningful for undefined steps.
		Snippets []string
	}

	// SyntaxError describes a document that could not be parsed.
	SyntaxError struct {
		URI     string
		Message string
		Line    int64
	}
)

// Label identifies a step within a scenario: trimmed keyword and text.
func (s Step) Label() string {
	keyword := strings.TrimSpace(s.Keyword)
	if keyword == "" {
		return s.Text
	}
	return keyword + " " + s.Text
}

// ErrorMessage returns the error text of the result, or an empty string.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}

// Formatter receives the replayed event sequence.
type Formatter interface {
	URI(uri string)
	Feature(feature Feature)
	Background(background Background)
	Scenario(scenario Scenario)
	ScenarioOutline(outline Scenario)
	Examples(examples Examples)
	Step(step Step)
	Result(result Result)
	SyntaxError(syntaxError SyntaxError)
	EOF()
	Done()
	Close()
}

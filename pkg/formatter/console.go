package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/denizgursoy/cukestatus/pkg/events"
)

// Summary tracks execution statistics. Outline headers are not counted as
// scenarios; their rows are.
type Summary struct {
	ScenariosTotal     int
	ScenariosPassed    int
	ScenariosFailed    int
	ScenariosUndefined int
	StepsTotal         int
	StepsPassed        int
	StepsFailed        int
	StepsSkipped       int
	StepsUndefined     int
}

// ConsoleFormatter prints a colored feature/scenario/step tree and a summary
// when the run is done. It is driven from a single goroutine.
type ConsoleFormatter struct {
	out       io.Writer
	useColors bool
	summary   Summary

	step     *events.Step
	inRow    bool
	scenario scenarioState
}

type scenarioState struct {
	open      bool
	failed    bool
	undefined bool
}

var _ events.Formatter = (*ConsoleFormatter)(nil)

// NewConsoleFormatter creates a formatter writing to out.
func NewConsoleFormatter(out io.Writer, useColors bool) *ConsoleFormatter {
	return &ConsoleFormatter{out: out, useColors: useColors}
}

func (f *ConsoleFormatter) writeln(s string) {
	fmt.Fprintln(f.out, s)
}

func (f *ConsoleFormatter) color(c, s string) string {
	if f.useColors {
		return c + s + colorReset
	}
	return s
}

func (f *ConsoleFormatter) URI(string) {}

func (f *ConsoleFormatter) Feature(feature events.Feature) {
	f.writeln("")
	f.writeln(f.color(colorKeyword, feature.Keyword+":") + " " + f.color(colorText, feature.Name))
}

func (f *ConsoleFormatter) Background(background events.Background) {
	f.writeln("    " + f.color(colorKeyword, background.Keyword+":") + " " + f.color(colorText, background.Name))
}

func (f *ConsoleFormatter) Scenario(scenario events.Scenario) {
	f.closeScenario()
	f.scenario = scenarioState{open: true}

	indent := "  "
	if scenario.Kind == events.KindExample && f.inRow {
		indent = "    "
	} else {
		f.inRow = false
		f.writeln("")
	}
	f.writeln(indent + f.color(colorKeyword, scenario.Keyword+":") + " " + f.colorizeOutlineParams(scenario.Name))
}

func (f *ConsoleFormatter) ScenarioOutline(outline events.Scenario) {
	f.closeScenario()
	f.inRow = true
	f.writeln("")
	f.writeln("  " + f.color(colorKeyword, outline.Keyword+":") + " " + f.colorizeOutlineParams(outline.Name))
}

func (f *ConsoleFormatter) Examples(examples events.Examples) {
	f.writeln("")
	f.writeln("    " + f.color(colorKeyword, examples.Keyword+":") + " " + f.color(colorText, examples.Name))
}

func (f *ConsoleFormatter) Step(step events.Step) {
	f.step = &step
}

func (f *ConsoleFormatter) Result(result events.Result) {
	keyword, text := "", ""
	if f.step != nil {
		keyword, text = f.step.Keyword, f.step.Text
	}
	f.step = nil

	f.summary.StepsTotal++
	switch result.Status {
	case events.StepPassed:
		f.summary.StepsPassed++
		f.writeStep(colorKeyword, colorText, keyword, text, f.color(colorGreen, symbolPass))

	case events.StepFailed, events.StepPending:
		f.summary.StepsFailed++
		f.scenario.failed = true
		f.writeStep(colorKeyword, colorText, keyword, text, f.color(colorRed, symbolFail))
		if msg := result.ErrorMessage(); msg != "" {
			for _, line := range strings.Split(msg, "\n") {
				f.writeln(f.color(colorRed, "        "+line))
			}
		}

	case events.StepUndefined:
		f.summary.StepsUndefined++
		f.scenario.undefined = true
		f.writeStep(colorKeyword, colorText, keyword, text, f.color(colorYellow, symbolUndefined))

	default:
		f.summary.StepsSkipped++
		f.writeStep(colorSkipped, colorSkipped, keyword, text, f.color(colorYellow, symbolSkip))
	}
}

func (f *ConsoleFormatter) writeStep(keywordColor, textColor, keyword, text, symbol string) {
	step := fmt.Sprintf("      %s%s", f.color(keywordColor, keyword), f.color(textColor, text))
	f.writeln(fmt.Sprintf("%-60s %s", step, symbol))
}

func (f *ConsoleFormatter) SyntaxError(syntaxError events.SyntaxError) {
	f.writeln(f.color(colorRed, fmt.Sprintf("syntax error in %s:%d", syntaxError.URI, syntaxError.Line)))
	for _, line := range strings.Split(syntaxError.Message, "\n") {
		f.writeln(f.color(colorRed, "  "+line))
	}
}

func (f *ConsoleFormatter) EOF() {
	f.closeScenario()
	f.inRow = false
}

// Done prints the summary.
func (f *ConsoleFormatter) Done() {
	f.closeScenario()
	f.PrintSummary()
}

func (f *ConsoleFormatter) Close() {}

func (f *ConsoleFormatter) closeScenario() {
	if !f.scenario.open {
		return
	}
	f.summary.ScenariosTotal++
	switch {
	case f.scenario.failed:
		f.summary.ScenariosFailed++
	case f.scenario.undefined:
		f.summary.ScenariosUndefined++
	default:
		f.summary.ScenariosPassed++
	}
	f.scenario = scenarioState{}
}

// GetSummary returns the current summary statistics
func (f *ConsoleFormatter) GetSummary() Summary {
	return f.summary
}

// PrintSummary prints the final test summary
func (f *ConsoleFormatter) PrintSummary() {
	s := f.summary
	f.writeln("")
	f.writeln(f.summaryLine(fmt.Sprintf("%d scenario(s)", s.ScenariosTotal), []count{
		{s.ScenariosPassed, "passed", colorGreen},
		{s.ScenariosFailed, "failed", colorRed},
		{s.ScenariosUndefined, "undefined", colorYellow},
	}))
	f.writeln(f.summaryLine(fmt.Sprintf("%d step(s)", s.StepsTotal), []count{
		{s.StepsPassed, "passed", colorGreen},
		{s.StepsFailed, "failed", colorRed},
		{s.StepsUndefined, "undefined", colorYellow},
		{s.StepsSkipped, "skipped", colorYellow},
	}))
}

type count struct {
	n     int
	label string
	color string
}

func (f *ConsoleFormatter) summaryLine(head string, counts []count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, f.color(c.color, fmt.Sprintf("%d %s", c.n, c.label)))
		}
	}
	if len(parts) == 0 {
		return head
	}
	return head + " (" + strings.Join(parts, ", ") + ")"
}

// colorizeOutlineParams applies the text color to the name while highlighting
// <placeholder> segments with the outline-parameter color.
func (f *ConsoleFormatter) colorizeOutlineParams(name string) string {
	if !f.useColors {
		return name
	}

	var b strings.Builder
	prev := 0
	for {
		start := strings.Index(name[prev:], "<")
		if start < 0 {
			break
		}
		start += prev
		end := strings.Index(name[start:], ">")
		if end < 0 {
			break
		}
		end += start + 1

		if start > prev {
			b.WriteString(colorText + name[prev:start] + colorReset)
		}
		b.WriteString(colorOutlineParam + name[start:end] + colorReset)
		prev = end
	}
	if prev == 0 {
		return colorText + name + colorReset
	}
	if prev < len(name) {
		b.WriteString(colorText + name[prev:] + colorReset)
	}
	return b.String()
}

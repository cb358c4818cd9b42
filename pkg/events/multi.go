package events

// Multi fans every callback out to formatters in the given order.
type Multi []Formatter

// NewMulti drops nil formatters and returns the fan-out.
func NewMulti(formatters ...Formatter) Multi {
	m := make(Multi, 0, len(formatters))
	for _, f := range formatters {
		if f != nil {
			m = append(m, f)
		}
	}
	return m
}

func (m Multi) URI(uri string) {
	for _, f := range m {
		f.URI(uri)
	}
}

func (m Multi) Feature(feature Feature) {
	for _, f := range m {
		f.Feature(feature)
	}
}

func (m Multi) Background(background Background) {
	for _, f := range m {
		f.Background(background)
	}
}

func (m Multi) Scenario(scenario Scenario) {
	for _, f := range m {
		f.Scenario(scenario)
	}
}

func (m Multi) ScenarioOutline(outline Scenario) {
	for _, f := range m {
		f.ScenarioOutline(outline)
	}
}

func (m Multi) Examples(examples Examples) {
	for _, f := range m {
		f.Examples(examples)
	}
}

func (m Multi) Step(step Step) {
	for _, f := range m {
		f.Step(step)
	}
}

func (m Multi) Result(result Result) {
	for _, f := range m {
		f.Result(result)
	}
}

func (m Multi) SyntaxError(syntaxError SyntaxError) {
	for _, f := range m {
		f.SyntaxError(syntaxError)
	}
}

func (m Multi) EOF() {
	for _, f := range m {
		f.EOF()
	}
}

func (m Multi) Done() {
	for _, f := range m {
		f.Done()
	}
}

func (m Multi) Close() {
	for _, f := range m {
		f.Close()
	}
}

// Package snippet renders implementation stubs for undefined steps.
package snippet

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

const (
	executorPath    = "github.com/denizgursoy/cukestatus/pkg/executor"
	defaultFuncName = "Step"
)

// argumentPattern finds the parts of a step text that become capture groups.
var argumentPattern = regexp.MustCompile(`"[^"]*"|\d+`)

type (
	// ArgKind is the Go type of a captured argument.
	ArgKind int

	// Step is the pattern and signature derived from one step text.
	Step struct {
		Text     string
		Pattern  string
		FuncName string
		Args     []ArgKind
	}
)

const (
	// IntArg is an integer capture, (\d+).
	IntArg ArgKind = iota
	// StringArg is a double-quoted capture, "([^"]*)".
	StringArg
)

// Parse derives the step pattern and function signature of text. The pattern
// is anchored, literal text is escaped, integers and double-quoted strings
// become capture groups.
func Parse(text string) Step {
	var pattern strings.Builder
	args := make([]ArgKind, 0)

	pattern.WriteString("^")
	last := 0
	for _, loc := range argumentPattern.FindAllStringIndex(text, -1) {
		pattern.WriteString(regexp.QuoteMeta(text[last:loc[0]]))
		if text[loc[0]] == '"' {
			pattern.WriteString(`"([^"]*)"`)
			args = append(args, StringArg)
		} else {
			pattern.WriteString(`(\d+)`)
			args = append(args, IntArg)
		}
		last = loc[1]
	}
	pattern.WriteString(regexp.QuoteMeta(text[last:]))
	pattern.WriteString("$")

	return Step{
		Text:     text,
		Pattern:  pattern.String(),
		FuncName: funcName(argumentPattern.ReplaceAllString(text, " ")),
		Args:     args,
	}
}

// Generate returns the snippet for an undefined step text.
func Generate(text string) string {
	return fmt.Sprintf("%#v", Parse(text).code())
}

// WriteFile renders the snippets of texts as one Go file of package
// pkgName. Duplicate function names get a numeric suffix.
func WriteFile(writer io.Writer, pkgName string, texts []string) error {
	if pkgName == "" {
		pkgName = "main"
	}
	file := jen.NewFile(pkgName)

	names := make(map[string]int)
	seen := make(map[string]bool)
	for _, text := range texts {
		if seen[text] {
			continue
		}
		seen[text] = true

		step := Parse(text)
		names[step.FuncName]++
		if n := names[step.FuncName]; n > 1 {
			step.FuncName = fmt.Sprintf("%s%d", step.FuncName, n)
		}
		file.Add(step.code())
		file.Line()
	}

	return file.Render(writer)
}

func (s Step) code() *jen.Statement {
	params := make([]jen.Code, 0, len(s.Args)+1)
	params = append(params, jen.Id("ctx").Qual("context", "Context"))
	for i, kind := range s.Args {
		param := jen.Id(fmt.Sprintf("arg%d", i+1))
		switch kind {
		case IntArg:
			param.Int()
		case StringArg:
			param.String()
		}
		params = append(params, param)
	}

	return jen.Comment(s.FuncName).Line().
		Comment(fmt.Sprintf("@cacik `%s`", s.Pattern)).Line().
		Func().Id(s.FuncName).Params(params...).
		Params(jen.Qual("context", "Context"), jen.Error()).
		Block(
			jen.Return(jen.Id("ctx"), jen.Qual(executorPath, "ErrPending")),
		)
}

// funcName turns the words of text into an exported identifier.
func funcName(text string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}

	name := b.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		return defaultFuncName + name
	}
	return name
}

// Package executor matches step text against registered definitions and
// invokes them.
package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/denizgursoy/cukestatus/pkg/snippet"
)

var (
	// ErrUndefined is returned when no step definition matches a step text.
	ErrUndefined = errors.New("no matching step definition")

	// ErrPending is returned by step definitions that are not implemented
	// yet. Generated snippets return it.
	ErrPending = errors.New("pending step definition")
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

type (
	// StepDefinition holds a compiled regex pattern and its associated function
	StepDefinition struct {
		Pattern  *regexp.Regexp
		Function any
	}

	// CustomType restricts a named type to a set of allowed values.
	CustomType struct {
		Name       string
		Underlying string
		// Values maps lowercase names and values to the canonical value.
		Values map[string]string
	}

	// StepExecutor handles matching and executing step definitions. It also
	// remembers a snippet for every undefined step text it was asked to run.
	StepExecutor struct {
		steps       []StepDefinition
		patternSet  map[string]bool
		customTypes map[string]*CustomType
		hooks       []*Hook

		mu           sync.Mutex
		snippets     []string
		undefined    []string
		snippetTexts map[string]bool
	}
)

// NewStepExecutor creates a new StepExecutor
func NewStepExecutor() *StepExecutor {
	return &StepExecutor{
		steps:        make([]StepDefinition, 0),
		patternSet:   make(map[string]bool),
		customTypes:  make(map[string]*CustomType),
		snippetTexts: make(map[string]bool),
	}
}

// RegisterStep registers a step definition with its regex pattern and function
func (e *StepExecutor) RegisterStep(pattern string, fn any) error {
	if e.patternSet[pattern] {
		return fmt.Errorf("duplicate step pattern: %s", pattern)
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid step pattern %q: %w", pattern, err)
	}

	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("step handler must be a function, got %T", fn)
	}

	e.steps = append(e.steps, StepDefinition{
		Pattern:  compiled,
		Function: fn,
	})
	e.patternSet[pattern] = true
	return nil
}

// RegisterCustomType restricts conversions to the named type to values.
// Keys are matched case-insensitively.
func (e *StepExecutor) RegisterCustomType(name, underlying string, values map[string]string) {
	normalized := make(map[string]string, len(values))
	for k, v := range values {
		normalized[strings.ToLower(k)] = v
	}
	e.customTypes[name] = &CustomType{Name: name, Underlying: underlying, Values: normalized}
}

// Match returns the first definition matching text and its captured
// arguments.
func (e *StepExecutor) Match(text string) (*StepDefinition, []string, bool) {
	for i := range e.steps {
		matches := e.steps[i].Pattern.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		return &e.steps[i], matches[1:], true
	}
	return nil, nil, false
}

// Defined reports whether a definition matches text. An undefined text is
// remembered for Snippets.
func (e *StepExecutor) Defined(text string) bool {
	if _, _, ok := e.Match(text); ok {
		return true
	}
	e.recordSnippet(text)
	return false
}

// RunStep executes the definition matching text. It returns the context the
// step produced, ErrUndefined when nothing matches, ErrPending when the step
// says so, or the step's own error. A panicking step is reported as an
// error.
func (e *StepExecutor) RunStep(ctx context.Context, text string) (context.Context, error) {
	def, args, ok := e.Match(text)
	if !ok {
		e.recordSnippet(text)
		return ctx, fmt.Errorf("%w for: %s", ErrUndefined, text)
	}

	newCtx, err := e.invokeStepFunction(ctx, def.Function, args)
	if newCtx == nil {
		newCtx = ctx
	}
	return newCtx, err
}

// Snippets returns one snippet per distinct undefined step text, in the
// order the texts were first seen.
func (e *StepExecutor) Snippets() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, len(e.snippets))
	copy(out, e.snippets)
	return out
}

// UndefinedSteps returns the distinct undefined step texts in first-seen
// order.
func (e *StepExecutor) UndefinedSteps() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.undefined...)
}

func (e *StepExecutor) recordSnippet(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snippetTexts[text] {
		return
	}
	e.snippetTexts[text] = true
	e.undefined = append(e.undefined, text)
	e.snippets = append(e.snippets, snippet.Generate(text))
}

// invokeStepFunction calls the step function with proper argument conversion
func (e *StepExecutor) invokeStepFunction(ctx context.Context, fn any, args []string) (newCtx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			newCtx = ctx
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()

	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	callArgs, err := e.buildCallArgs(ctx, fnType, args)
	if err != nil {
		return ctx, err
	}

	results := fnValue.Call(callArgs)
	return processReturnValues(fnType, results)
}

// buildCallArgs constructs the argument slice for function invocation
func (e *StepExecutor) buildCallArgs(ctx context.Context, fnType reflect.Type, capturedArgs []string) ([]reflect.Value, error) {
	numParams := fnType.NumIn()
	callArgs := make([]reflect.Value, 0, numParams)

	capturedIndex := 0
	for i := 0; i < numParams; i++ {
		paramType := fnType.In(i)

		if paramType.Implements(contextType) {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
			continue
		}

		if capturedIndex >= len(capturedArgs) {
			return nil, fmt.Errorf("not enough captured arguments: expected %d more, have %d", numParams-i, len(capturedArgs)-capturedIndex)
		}

		arg := capturedArgs[capturedIndex]
		capturedIndex++

		if custom, ok := e.customTypes[paramType.Name()]; ok {
			canonical, found := custom.Values[strings.ToLower(arg)]
			if !found {
				return nil, fmt.Errorf("invalid %s value %q", custom.Name, arg)
			}
			arg = canonical
		}

		converted, err := convertArg(arg, paramType)
		if err != nil {
			return nil, fmt.Errorf("failed to convert argument %q to %s: %w", arg, paramType, err)
		}
		callArgs = append(callArgs, converted)
	}

	return callArgs, nil
}

// processReturnValues extracts context and error from function return values
func processReturnValues(fnType reflect.Type, results []reflect.Value) (context.Context, error) {
	var newCtx context.Context
	var retErr error

	for i, result := range results {
		resultType := fnType.Out(i)

		switch {
		case resultType.Implements(contextType):
			if !result.IsNil() {
				newCtx = result.Interface().(context.Context)
			}
		case resultType.Implements(errorType):
			if !result.IsNil() {
				retErr = result.Interface().(error)
			}
		}
	}

	return newCtx, retErr
}

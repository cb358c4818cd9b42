package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
)

// Phase is the point of a scenario at which a hook runs.
type Phase int

const (
	// BeforeScenario hooks run before the first step of a scenario.
	BeforeScenario Phase = iota
	// AfterScenario hooks run after the last step of a scenario.
	AfterScenario
)

func (p Phase) String() string {
	switch p {
	case BeforeScenario:
		return "before scenario"
	case AfterScenario:
		return "after scenario"
	default:
		return "unknown"
	}
}

type (
	// Scenario is the metadata handed to hooks.
	Scenario struct {
		URI  string
		Name string
		Line int64
		Tags []string
	}

	// HookFunc is a scenario hook. For AfterScenario hooks scenarioErr is the
	// first step error of the scenario, nil when it passed.
	HookFunc func(ctx context.Context, scenario Scenario, scenarioErr error) (context.Context, error)

	// Hook is a HookFunc with its phase, tag filter and ordering.
	Hook struct {
		Phase Phase

		// Tags is a tag expression such as "@db and not @slow". Empty
		// matches every scenario.
		Tags string

		// Order determines execution order (lower = runs first). Hooks with
		// the same Order run in registration order.
		Order int

		Func HookFunc

		matcher interface{ Evaluate([]string) bool }
	}
)

// Matches reports whether the hook applies to a scenario with tags.
func (h *Hook) Matches(tags []string) bool {
	return h.matcher == nil || h.matcher.Evaluate(tags)
}

// RegisterHook adds a hook with order 0.
func (e *StepExecutor) RegisterHook(phase Phase, tags string, fn HookFunc) error {
	return e.AddHook(&Hook{Phase: phase, Tags: tags, Func: fn})
}

// AddHook validates and adds hook.
func (e *StepExecutor) AddHook(hook *Hook) error {
	if hook == nil || hook.Func == nil {
		return fmt.Errorf("hook function is required")
	}
	if expr := strings.TrimSpace(hook.Tags); expr != "" {
		matcher, err := tagexpressions.Parse(expr)
		if err != nil {
			return fmt.Errorf("invalid hook tag expression %q: %w", hook.Tags, err)
		}
		hook.matcher = matcher
	}

	e.hooks = append(e.hooks, hook)
	e.hooks = SortHooks(e.hooks)
	return nil
}

// SortHooks returns hooks sorted by Order (ascending), keeping the relative
// order of hooks with the same Order.
func SortHooks(hooks []*Hook) []*Hook {
	sorted := make([]*Hook, len(hooks))
	copy(sorted, hooks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	return sorted
}

// RunBeforeScenario runs the matching BeforeScenario hooks in order and
// stops at the first error.
func (e *StepExecutor) RunBeforeScenario(ctx context.Context, scenario Scenario) (context.Context, error) {
	for _, hook := range e.hooks {
		if hook.Phase != BeforeScenario || !hook.Matches(scenario.Tags) {
			continue
		}
		next, err := runHook(ctx, hook, scenario, nil)
		ctx = next
		if err != nil {
			return ctx, fmt.Errorf("%s hook failed: %w", hook.Phase, err)
		}
	}
	return ctx, nil
}

// RunAfterScenario runs every matching AfterScenario hook and returns the
// first error.
func (e *StepExecutor) RunAfterScenario(ctx context.Context, scenario Scenario, scenarioErr error) (context.Context, error) {
	var first error
	for _, hook := range e.hooks {
		if hook.Phase != AfterScenario || !hook.Matches(scenario.Tags) {
			continue
		}
		next, err := runHook(ctx, hook, scenario, scenarioErr)
		ctx = next
		if err != nil && first == nil {
			first = fmt.Errorf("%s hook failed: %w", hook.Phase, err)
		}
	}
	return ctx, first
}

func runHook(ctx context.Context, hook *Hook, scenario Scenario, scenarioErr error) (next context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = ctx
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()

	next, err = hook.Func(ctx, scenario, scenarioErr)
	if next == nil {
		next = ctx
	}
	return next, err
}

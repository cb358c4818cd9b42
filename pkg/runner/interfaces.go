//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import (
	"context"

	"github.com/denizgursoy/cukestatus/pkg/executor"
)

type (
	// Backend executes steps and scenario hooks.
	Backend interface {
		Defined(text string) bool
		RunStep(ctx context.Context, text string) (context.Context, error)
		Snippets() []string
		RunBeforeScenario(ctx context.Context, scenario executor.Scenario) (context.Context, error)
		RunAfterScenario(ctx context.Context, scenario executor.Scenario, scenarioErr error) (context.Context, error)
	}
)

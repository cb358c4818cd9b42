//go:generate mockgen -source=interfaces.go -destination=interface_mock.go -package=app
package app

import (
	"context"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/cukestatus/pkg/events"
	"github.com/denizgursoy/cukestatus/pkg/runner"
)

type (
	FeatureRunner interface {
		Load() ([]*messages.GherkinDocument, []events.SyntaxError, error)
		Run(ctx context.Context) (runner.Summary, error)
	}
)

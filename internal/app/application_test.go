package app

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/cukestatus/pkg/config"
	"github.com/denizgursoy/cukestatus/pkg/logging"
	"github.com/denizgursoy/cukestatus/pkg/runner"
)

type streams struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestApplication(stdin string, factory RunnerFactory) (*Application, *streams) {
	s := &streams{}
	return New(strings.NewReader(stdin), &s.stdout, &s.stderr, factory), s
}

// mockFactory returns a factory handing out mock and recording the config it
// was built with.
func mockFactory(mock FeatureRunner, got **config.Config) RunnerFactory {
	return func(cfg *config.Config, _ logging.Logger, _, _ io.Writer) FeatureRunner {
		*got = cfg
		return mock
	}
}

func TestStartApplication_Run(t *testing.T) {
	t.Run("should merge flags into the runner config", func(t *testing.T) {
		controller := gomock.NewController(t)
		featureRunner := NewMockFeatureRunner(controller)
		featureRunner.EXPECT().Run(gomock.Any()).Return(runner.Summary{Total: 3, Passed: 3}, nil).Times(1)

		var got *config.Config
		app, _ := newTestApplication("", mockFactory(featureRunner, &got))

		err := app.Command().Run(context.Background(), []string{
			"cukestatus", "run",
			"--tags", "@smoke",
			"--name", "^Add",
			"--dry-run",
			"--disable-log",
			"--identifier", "CukeRunner",
			"features", "more",
		})

		require.NoError(t, err)
		require.Equal(t, []string{"features", "more"}, got.Features)
		require.Equal(t, "@smoke", got.Tags)
		require.Equal(t, "^Add", got.Name)
		require.True(t, got.DryRun)
		require.True(t, got.DisableLog)
		require.Equal(t, "CukeRunner", got.Identifier)
	})

	t.Run("should read flags from the environment", func(t *testing.T) {
		t.Setenv("CUKESTATUS_TAGS", "@env")
		controller := gomock.NewController(t)
		featureRunner := NewMockFeatureRunner(controller)
		featureRunner.EXPECT().Run(gomock.Any()).Return(runner.Summary{}, nil)

		var got *config.Config
		app, _ := newTestApplication("", mockFactory(featureRunner, &got))

		err := app.Command().Run(context.Background(), []string{"cukestatus", "run", "--disable-log"})

		require.NoError(t, err)
		require.Equal(t, "@env", got.Tags)
	})

	t.Run("should fail when any scenario did not pass", func(t *testing.T) {
		controller := gomock.NewController(t)
		featureRunner := NewMockFeatureRunner(controller)
		featureRunner.EXPECT().Run(gomock.Any()).Return(runner.Summary{Total: 2, Passed: 1, Failures: 1}, nil)

		var got *config.Config
		app, _ := newTestApplication("", mockFactory(featureRunner, &got))

		err := app.Command().Run(context.Background(), []string{"cukestatus", "run", "--disable-log"})

		require.ErrorIs(t, err, ErrRunFailed)
		require.Contains(t, err.Error(), "1 failures")
	})

	t.Run("should reject an invalid log level", func(t *testing.T) {
		controller := gomock.NewController(t)
		featureRunner := NewMockFeatureRunner(controller)

		var got *config.Config
		app, _ := newTestApplication("", mockFactory(featureRunner, &got))

		err := app.Command().Run(context.Background(), []string{"cukestatus", "run", "--log-level", "loud"})

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("should write the status stream with an empty registry", func(t *testing.T) {
		app, s := newTestApplication("", nil)

		err := app.Command().Run(context.Background(), []string{
			"cukestatus", "run", "--disable-log", "--no-color", "testdata",
		})

		require.ErrorIs(t, err, ErrRunFailed)
		out := s.stdout.String()
		require.Contains(t, out, "INSTRUMENTATION_STATUS: numtests=3\n")
		require.Contains(t, out, "INSTRUMENTATION_STATUS: test=Scenario: Add two numbers\n")
		require.Contains(t, out, "INSTRUMENTATION_STATUS_CODE: 1\n")
		require.Contains(t, out, "INSTRUMENTATION_STATUS_CODE: -1\n")
		require.Contains(t, s.stderr.String(), "Feature: Math")
	})
}

func TestStartApplication_Count(t *testing.T) {
	t.Run("should print planned totals", func(t *testing.T) {
		app, s := newTestApplication("", nil)

		err := app.Command().Run(context.Background(), []string{"cukestatus", "count", "testdata"})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(s.stdout.String()), "\n")
		require.Len(t, lines, 3)
		require.Contains(t, lines[0], "FEATURE")
		require.Contains(t, lines[1], "Math")
		require.Contains(t, lines[1], "testdata/math.feature")
		require.True(t, strings.HasPrefix(lines[2], "total"))
		require.True(t, strings.HasSuffix(lines[2], "3"))
	})

	t.Run("should apply the tag filter", func(t *testing.T) {
		app, s := newTestApplication("", nil)

		err := app.Command().Run(context.Background(), []string{"cukestatus", "count", "--tags", "@smoke", "testdata"})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(s.stdout.String()), "\n")
		require.True(t, strings.HasSuffix(lines[len(lines)-1], "1"))
	})
}

func TestStartApplication_Timings(t *testing.T) {
	t.Run("should print the steps map as a table", func(t *testing.T) {
		app, s := newTestApplication("{\nGiven I log in\t-\t1.5\nWhen I pay - twice\t-\t0.25\n}\n", nil)

		err := app.Command().Run(context.Background(), []string{"cukestatus", "timings"})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(s.stdout.String()), "\n")
		require.Len(t, lines, 4)
		require.Contains(t, lines[1], "Given I log in")
		require.Contains(t, lines[1], "1.500")
		require.Contains(t, lines[2], "When I pay - twice")
		require.Contains(t, lines[3], "1.750")
	})

	t.Run("should reject a malformed steps map", func(t *testing.T) {
		app, _ := newTestApplication("{\nno separator\n}", nil)

		err := app.Command().Run(context.Background(), []string{"cukestatus", "timings"})

		require.Error(t, err)
		require.Contains(t, err.Error(), "could not parse steps map")
	})
}

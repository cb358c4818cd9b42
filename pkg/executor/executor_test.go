package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStepExecutor_RegisterStep(t *testing.T) {
	t.Run("registers valid step", func(t *testing.T) {
		exec := NewStepExecutor()
		err := exec.RegisterStep("^I have (\\d+) apples$", func(ctx context.Context, count int) (context.Context, error) {
			return ctx, nil
		})
		require.NoError(t, err)
	})

	t.Run("returns error for invalid regex", func(t *testing.T) {
		exec := NewStepExecutor()
		err := exec.RegisterStep("[invalid", func() {})
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid step pattern")
	})

	t.Run("returns error for duplicate pattern", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^test$", func() {}))

		err := exec.RegisterStep("^test$", func() {})
		require.Error(t, err)
		require.Contains(t, err.Error(), "duplicate step pattern")
	})

	t.Run("returns error for non-function handler", func(t *testing.T) {
		exec := NewStepExecutor()
		err := exec.RegisterStep("^test$", "not a function")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be a function")
	})

	t.Run("returns error for nil handler", func(t *testing.T) {
		exec := NewStepExecutor()
		require.Error(t, exec.RegisterStep("^test$", nil))
	})
}

func TestStepExecutor_RunStep(t *testing.T) {
	t.Run("executes step with int argument", func(t *testing.T) {
		exec := NewStepExecutor()
		var capturedCount int

		require.NoError(t, exec.RegisterStep("^I have (\\d+) apples$", func(ctx context.Context, count int) (context.Context, error) {
			capturedCount = count
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "I have 5 apples")
		require.NoError(t, err)
		require.Equal(t, 5, capturedCount)
	})

	t.Run("executes step with multiple arguments", func(t *testing.T) {
		exec := NewStepExecutor()
		var capturedCount int
		var capturedItem string
		var capturedPrice float64

		require.NoError(t, exec.RegisterStep("^I buy (\\d+) (\\w+) for ([\\d.]+)$", func(ctx context.Context, count int, item string, price float64) (context.Context, error) {
			capturedCount = count
			capturedItem = item
			capturedPrice = price
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "I buy 3 oranges for 19.99")
		require.NoError(t, err)
		require.Equal(t, 3, capturedCount)
		require.Equal(t, "oranges", capturedItem)
		require.Equal(t, 19.99, capturedPrice)
	})

	t.Run("executes step without context parameter", func(t *testing.T) {
		exec := NewStepExecutor()
		executed := false

		require.NoError(t, exec.RegisterStep("^simple step$", func() {
			executed = true
		}))

		_, err := exec.RunStep(context.Background(), "simple step")
		require.NoError(t, err)
		require.True(t, executed)
	})

	t.Run("propagates context between steps", func(t *testing.T) {
		exec := NewStepExecutor()
		type ctxKey string
		key := ctxKey("value")

		require.NoError(t, exec.RegisterStep("^I set value to (\\d+)$", func(ctx context.Context, val int) (context.Context, error) {
			return context.WithValue(ctx, key, val), nil
		}))

		var capturedVal int
		require.NoError(t, exec.RegisterStep("^I read the value$", func(ctx context.Context) (context.Context, error) {
			capturedVal = ctx.Value(key).(int)
			return ctx, nil
		}))

		ctx, err := exec.RunStep(context.Background(), "I set value to 42")
		require.NoError(t, err)
		_, err = exec.RunStep(ctx, "I read the value")
		require.NoError(t, err)
		require.Equal(t, 42, capturedVal)
	})

	t.Run("keeps the incoming context when step returns nil", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^nil context$", func(ctx context.Context) (context.Context, error) {
			return nil, nil
		}))

		ctx := context.Background()
		got, err := exec.RunStep(ctx, "nil context")
		require.NoError(t, err)
		require.Equal(t, ctx, got)
	})

	t.Run("returns error when step function returns error", func(t *testing.T) {
		exec := NewStepExecutor()
		expectedErr := errors.New("step failed")

		require.NoError(t, exec.RegisterStep("^failing step$", func(ctx context.Context) (context.Context, error) {
			return ctx, expectedErr
		}))

		_, err := exec.RunStep(context.Background(), "failing step")
		require.ErrorIs(t, err, expectedErr)
	})

	t.Run("returns pending for unimplemented steps", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^later$", func(ctx context.Context) (context.Context, error) {
			return ctx, ErrPending
		}))

		_, err := exec.RunStep(context.Background(), "later")
		require.ErrorIs(t, err, ErrPending)
	})

	t.Run("returns undefined for unmatched step", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^known step$", func() {}))

		_, err := exec.RunStep(context.Background(), "unknown step")
		require.ErrorIs(t, err, ErrUndefined)
		require.Contains(t, err.Error(), "unknown step")
	})

	t.Run("recovers panics into errors", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^explode$", func() {
			panic("kaboom")
		}))

		_, err := exec.RunStep(context.Background(), "explode")
		require.Error(t, err)
		require.Contains(t, err.Error(), "kaboom")
	})

	t.Run("returns error for type conversion failure", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^I have (\\w+) apples$", func(ctx context.Context, count int) (context.Context, error) {
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "I have many apples")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to convert")
	})

	t.Run("returns error when captures are missing", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^no captures$", func(count int) {}))

		_, err := exec.RunStep(context.Background(), "no captures")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not enough captured arguments")
	})
}

func TestStepExecutor_Snippets(t *testing.T) {
	t.Run("should record one snippet per undefined text in first-seen order", func(t *testing.T) {
		exec := NewStepExecutor()
		ctx := context.Background()

		_, _ = exec.RunStep(ctx, "I eat 3 cukes")
		_, _ = exec.RunStep(ctx, "I rest")
		_, _ = exec.RunStep(ctx, "I eat 3 cukes")

		snippets := exec.Snippets()
		require.Len(t, snippets, 2)
		require.Contains(t, snippets[0], "func IEatCukes(")
		require.Contains(t, snippets[1], "func IRest(")
	})

	t.Run("should record undefined texts seen in dry runs", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^known$", func() {}))

		require.True(t, exec.Defined("known"))
		require.False(t, exec.Defined("unknown"))
		require.Len(t, exec.Snippets(), 1)
		require.Equal(t, []string{"unknown"}, exec.UndefinedSteps())
	})
}

func TestStepExecutor_BoolArgument(t *testing.T) {
	testCases := []struct {
		name     string
		stepText string
		expected bool
	}{
		{"true", "it is true", true},
		{"false", "it is false", false},
		{"TRUE (uppercase)", "it is TRUE", true},
		{"False (mixed case)", "it is False", false},
		{"yes", "it is yes", true},
		{"NO (uppercase)", "it is NO", false},
		{"on", "it is on", true},
		{"off", "it is off", false},
		{"enabled", "it is enabled", true},
		{"DISABLED (uppercase)", "it is DISABLED", false},
		{"1", "it is 1", true},
		{"0", "it is 0", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exec := NewStepExecutor()
			var capturedValue bool

			require.NoError(t, exec.RegisterStep("^it is (.+)$", func(ctx context.Context, value bool) (context.Context, error) {
				capturedValue = value
				return ctx, nil
			}))

			_, err := exec.RunStep(context.Background(), tc.stepText)
			require.NoError(t, err)
			require.Equal(t, tc.expected, capturedValue)
		})
	}

	t.Run("returns error for invalid bool value", func(t *testing.T) {
		exec := NewStepExecutor()
		require.NoError(t, exec.RegisterStep("^it is (.+)$", func(ctx context.Context, value bool) (context.Context, error) {
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "it is maybe")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid syntax")
	})
}

// Custom type for testing
type Color string

// Custom type for testing int-based enums
type Priority int

func TestStepExecutor_CustomTypes(t *testing.T) {
	t.Run("converts string to custom type", func(t *testing.T) {
		exec := NewStepExecutor()
		exec.RegisterCustomType("Color", "string", map[string]string{
			"red":  "red",
			"blue": "blue",
		})

		var capturedColor Color
		require.NoError(t, exec.RegisterStep("^I select ((?i:red|blue))$", func(ctx context.Context, c Color) (context.Context, error) {
			capturedColor = c
			return ctx, nil
		}))

		for _, input := range []string{"RED", "Red", "red"} {
			_, err := exec.RunStep(context.Background(), "I select "+input)
			require.NoError(t, err, "Failed for: %s", input)
			require.Equal(t, Color("red"), capturedColor)
		}
	})

	t.Run("rejects invalid value", func(t *testing.T) {
		exec := NewStepExecutor()
		exec.RegisterCustomType("Color", "string", map[string]string{"red": "red"})

		require.NoError(t, exec.RegisterStep("^I select (\\w+)$", func(ctx context.Context, c Color) (context.Context, error) {
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "I select purple")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid Color")
		require.Contains(t, err.Error(), "purple")
	})

	t.Run("converts custom int type by name", func(t *testing.T) {
		exec := NewStepExecutor()
		exec.RegisterCustomType("Priority", "int", map[string]string{
			"low":  "1",
			"high": "3",
			"1":    "1",
			"3":    "3",
		})

		var capturedPriority Priority
		require.NoError(t, exec.RegisterStep("^priority is (\\w+)$", func(ctx context.Context, p Priority) (context.Context, error) {
			capturedPriority = p
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "priority is high")
		require.NoError(t, err)
		require.Equal(t, Priority(3), capturedPriority)
	})

	t.Run("custom type without registration still works", func(t *testing.T) {
		exec := NewStepExecutor()

		var capturedColor Color
		require.NoError(t, exec.RegisterStep("^I select (\\w+)$", func(ctx context.Context, c Color) (context.Context, error) {
			capturedColor = c
			return ctx, nil
		}))

		_, err := exec.RunStep(context.Background(), "I select anything")
		require.NoError(t, err)
		require.Equal(t, Color("anything"), capturedColor)
	})

	t.Run("converts uuid arguments", func(t *testing.T) {
		exec := NewStepExecutor()
		var captured uuid.UUID
		require.NoError(t, exec.RegisterStep("^order (\\S+) exists$", func(id uuid.UUID) {
			captured = id
		}))

		id := uuid.New()
		_, err := exec.RunStep(context.Background(), "order "+id.String()+" exists")
		require.NoError(t, err)
		require.Equal(t, id, captured)

		_, err = exec.RunStep(context.Background(), "order not-a-uuid exists")
		require.Error(t, err)
	})
}

package snippet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should anchor and capture integers and quoted strings", func(t *testing.T) {
		step := Parse(`I have 4 cukes in my "big" belly`)

		require.Equal(t, `^I have (\d+) cukes in my "([^"]*)" belly$`, step.Pattern)
		require.Equal(t, []ArgKind{IntArg, StringArg}, step.Args)
		require.Equal(t, "IHaveCukesInMyBelly", step.FuncName)
	})

	t.Run("should escape regex metacharacters", func(t *testing.T) {
		step := Parse("the total is (approx) $5.00?")

		require.Equal(t, `^the total is \(approx\) \$(\d+)\.(\d+)\?$`, step.Pattern)
		require.Len(t, step.Args, 2)
	})

	t.Run("should fall back to a default function name", func(t *testing.T) {
		require.Equal(t, "Step", Parse(`"only" 42`).FuncName)
	})

	t.Run("should keep unicode words", func(t *testing.T) {
		require.Equal(t, "IchHabeÄpfel", Parse("ich habe äpfel").FuncName)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("should render a pending step function", func(t *testing.T) {
		snippet := Generate(`I have 4 cukes in my "big" belly`)

		require.Contains(t, snippet, "// IHaveCukesInMyBelly\n")
		require.Contains(t, snippet, "// @cacik `^I have (\\d+) cukes in my \"([^\"]*)\" belly$`\n")
		require.Contains(t, snippet, "func IHaveCukesInMyBelly(ctx context.Context, arg1 int, arg2 string) (context.Context, error) {")
		require.Contains(t, snippet, "return ctx, executor.ErrPending")
	})

	t.Run("should be stable for identical text", func(t *testing.T) {
		require.Equal(t, Generate("I eat 3 cukes"), Generate("I eat 3 cukes"))
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("should write one function per distinct step", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteFile(&buf, "steps", []string{"I eat 3 cukes", "I eat 3 cukes", "I eat 5 cukes", "I rest"})
		require.NoError(t, err)

		out := buf.String()
		require.Contains(t, out, "package steps")
		require.Contains(t, out, "\"github.com/denizgursoy/cukestatus/pkg/executor\"")
		require.Contains(t, out, "func IEatCukes(ctx context.Context, arg1 int)")
		require.Contains(t, out, "func IEatCukes2(ctx context.Context, arg1 int)")
		require.Contains(t, out, "func IRest(ctx context.Context)")
	})

	t.Run("should default to package main", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteFile(&buf, "", nil))
		require.Contains(t, buf.String(), "package main")
	})
}

func TestResolveTarget(t *testing.T) {
	t.Run("should read the package clause of existing files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "steps.go"), []byte("package bdd\n"), 0o644))

		target, err := ResolveTarget(filepath.Join(dir, "snippets.go"))
		require.NoError(t, err)
		require.Equal(t, "bdd", target.Package)
		require.Equal(t, filepath.Join(dir, "snippets.go"), target.Path)
	})

	t.Run("should ignore the snippet file itself and test files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "acceptance")
		require.NoError(t, os.Mkdir(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "snippets.go"), []byte("package stale\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "steps_test.go"), []byte("package acceptance_test\n"), 0o644))

		target, err := ResolveTarget(filepath.Join(dir, "snippets.go"))
		require.NoError(t, err)
		require.Equal(t, "acceptance", target.Package)
	})

	t.Run("should use the module path at the module root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/acme/Cuke-Tests/v2\n"), 0o644))

		target, err := ResolveTarget(filepath.Join(dir, "snippets.go"))
		require.NoError(t, err)
		require.Equal(t, "cuke_tests", target.Package)
		require.Equal(t, "github.com/acme/Cuke-Tests/v2", target.ImportPath)
	})

	t.Run("should derive the import path below the module root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/acme/bdd\n"), 0o644))
		dir := filepath.Join(root, "internal", "steps")
		require.NoError(t, os.MkdirAll(dir, 0o755))

		target, err := ResolveTarget(filepath.Join(dir, "snippets.go"))
		require.NoError(t, err)
		require.Equal(t, "steps", target.Package)
		require.Equal(t, "github.com/acme/bdd/internal/steps", target.ImportPath)
	})

	t.Run("should sanitize the directory name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "9-acceptance")
		require.NoError(t, os.Mkdir(dir, 0o755))

		target, err := ResolveTarget(filepath.Join(dir, "snippets.go"))
		require.NoError(t, err)
		require.Equal(t, "_9_acceptance", target.Package)
	})

	t.Run("should fail for a missing directory", func(t *testing.T) {
		_, err := ResolveTarget(filepath.Join(t.TempDir(), "missing", "snippets.go"))
		require.Error(t, err)
	})
}

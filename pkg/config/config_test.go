package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `features:
  - features/login
  - features/math.feature
tags: "@smoke and not @slow"
name: "^Add"
skip_file: .cukestatus/skip.yaml
dry_run: true
log_level: debug
identifier: CustomRunner
snippets: steps_gen.go
`

func TestLoadFile(t *testing.T) {
	t.Run("should parse every field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cukestatus.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		require.Equal(t, &Config{
			Features:   []string{"features/login", "features/math.feature"},
			Tags:       "@smoke and not @slow",
			Name:       "^Add",
			SkipFile:   ".cukestatus/skip.yaml",
			DryRun:     true,
			LogLevel:   "debug",
			Identifier: "CustomRunner",
			Snippets:   "steps_gen.go",
		}, cfg)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cukestatus.yaml")
		require.NoError(t, os.WriteFile(path, []byte("features: [a"), 0o644))

		_, err := LoadFile(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "could not parse config")
	})

	t.Run("should fail on a missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestFindConfig(t *testing.T) {
	t.Run("should walk up to the nearest config", func(t *testing.T) {
		root := t.TempDir()
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".cukestatus.yaml"), []byte("tags: '@x'\n"), 0o644))

		path, err := FindConfig(nested)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, ".cukestatus.yaml"), path)
	})

	t.Run("should prefer earlier names in the same directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "cukestatus.yml"), []byte{}, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, ".cukestatus.yml"), []byte{}, 0o644))

		path, err := FindConfig(root)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, ".cukestatus.yml"), path)
	})
}

func TestMergeConfigs(t *testing.T) {
	t.Run("should let later values win", func(t *testing.T) {
		merged := MergeConfigs(
			&Config{Tags: "@a", LogLevel: "info", Features: []string{"x"}},
			nil,
			&Config{Tags: "@b", NoColor: true},
		)

		require.Equal(t, "@b", merged.Tags)
		require.Equal(t, "info", merged.LogLevel)
		require.Equal(t, []string{"x"}, merged.Features)
		require.True(t, merged.NoColor)
	})

	t.Run("should keep switches on", func(t *testing.T) {
		merged := MergeConfigs(&Config{DryRun: true, DisableLog: true}, &Config{})
		require.True(t, merged.DryRun)
		require.True(t, merged.DisableLog)
	})

	t.Run("should return an empty config without input", func(t *testing.T) {
		require.Equal(t, &Config{}, MergeConfigs())
	})
}

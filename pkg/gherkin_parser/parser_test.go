package gherkin_parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGherkinFile(t *testing.T) {
	t.Run("should return feature", func(t *testing.T) {
		file, err := os.ReadFile("testdata/math.feature")
		require.NoError(t, err)

		document, err := ParseGherkinFile(strings.NewReader(string(file)))
		require.NoError(t, err)
		require.Equal(t, "Math", document.Feature.Name)
		require.Len(t, document.Feature.Children, 2)
	})

	t.Run("should fail on invalid gherkin", func(t *testing.T) {
		file, err := os.ReadFile("testdata-invalid/broken.feature")
		require.NoError(t, err)

		_, err = ParseGherkinFile(strings.NewReader(string(file)))
		require.Error(t, err)
	})
}

func TestSearchFeatureFilesIn(t *testing.T) {
	t.Run("should return all feature files in a directory", func(t *testing.T) {
		actualFiles, err := SearchFeatureFilesIn([]string{"testdata"})

		require.NoError(t, err)
		require.Equal(t, []string{
			filepath.Join("testdata", "math.feature"),
			filepath.Join("testdata", "nested", "login.feature"),
		}, actualFiles)
	})

	t.Run("should accept a feature file path", func(t *testing.T) {
		actualFiles, err := SearchFeatureFilesIn([]string{"testdata/math.feature"})

		require.NoError(t, err)
		require.Equal(t, []string{"testdata/math.feature"}, actualFiles)
	})

	t.Run("should fail for a missing path", func(t *testing.T) {
		_, err := SearchFeatureFilesIn([]string{"testdata/missing"})
		require.Error(t, err)
	})
}

func TestLoadDocuments(t *testing.T) {
	t.Run("should set the uri of every document", func(t *testing.T) {
		documents, syntaxErrors, err := LoadDocuments([]string{"testdata"})

		require.NoError(t, err)
		require.Empty(t, syntaxErrors)
		require.Len(t, documents, 2)
		require.Equal(t, "testdata/math.feature", documents[0].Uri)
		require.Equal(t, "testdata/nested/login.feature", documents[1].Uri)
	})

	t.Run("should report parse failures as syntax errors", func(t *testing.T) {
		documents, syntaxErrors, err := LoadDocuments([]string{"testdata-invalid"})

		require.NoError(t, err)
		require.Empty(t, documents)
		require.Len(t, syntaxErrors, 1)
		require.Equal(t, "testdata-invalid/broken.feature", syntaxErrors[0].URI)
		require.Equal(t, int64(6), syntaxErrors[0].Line)
	})

	t.Run("should fail when nothing is found", func(t *testing.T) {
		_, _, err := LoadDocuments([]string{t.TempDir()})
		require.ErrorIs(t, err, ErrNoFeatures)
	})
}

func TestNewSyntaxError(t *testing.T) {
	t.Run("should extract the first line number", func(t *testing.T) {
		syntaxError := NewSyntaxError("a.feature", errors.New("Parser errors:\n(12:3): expected: #EOF\n(14:1): again"))
		require.Equal(t, int64(12), syntaxError.Line)
		require.Equal(t, "a.feature", syntaxError.URI)
	})

	t.Run("should leave the line empty without location", func(t *testing.T) {
		require.Zero(t, NewSyntaxError("a.feature", errors.New("bad")).Line)
	})
}

// Package gherkin_parser finds and parses feature files.
package gherkin_parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/denizgursoy/cukestatus/pkg/events"
)

const (
	FeatureExtension = ".feature"
)

// ErrNoFeatures is returned when the searched paths hold no feature file.
var ErrNoFeatures = errors.New("no feature files found")

var locationPattern = regexp.MustCompile(`\((\d+):(\d+)\)`)

// SearchFeatureFilesIn walks paths and returns every feature file in lexical
// order per path. A path may also name a feature file directly.
func SearchFeatureFilesIn(paths []string) ([]string, error) {
	featureFiles := make([]string, 0)

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), FeatureExtension) {
				featureFiles = append(featureFiles, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not search %s: %w", root, err)
		}
	}
	return featureFiles, nil
}

// ParseGherkinFile parses one document.
func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	id := (&messages.Incrementing{}).NewId
	document, err := gherkin.ParseGherkinDocument(reader, id)
	if err != nil {
		return nil, err
	}
	return document, nil
}

// LoadDocuments parses every feature file under paths. Files that fail to
// parse are returned as syntax errors and do not stop loading; I/O errors
// do.
func LoadDocuments(paths []string) ([]*messages.GherkinDocument, []events.SyntaxError, error) {
	files, err := SearchFeatureFilesIn(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoFeatures, strings.Join(paths, ", "))
	}

	documents := make([]*messages.GherkinDocument, 0, len(files))
	syntaxErrors := make([]events.SyntaxError, 0)
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("could not read file %s, error=%w", file, err)
		}

		uri := filepath.ToSlash(file)
		document, err := ParseGherkinFile(bytes.NewReader(content))
		if err != nil {
			syntaxErrors = append(syntaxErrors, NewSyntaxError(uri, err))
			continue
		}
		document.Uri = uri
		documents = append(documents, document)
	}

	return documents, syntaxErrors, nil
}

// NewSyntaxError describes a parse failure of the document at uri. The line
// is taken from the first "(line:column)" location in the message.
func NewSyntaxError(uri string, err error) events.SyntaxError {
	syntaxError := events.SyntaxError{URI: uri, Message: err.Error()}
	if match := locationPattern.FindStringSubmatch(syntaxError.Message); match != nil {
		if line, convErr := strconv.ParseInt(match[1], 10, 64); convErr == nil {
			syntaxError.Line = line
		}
	}
	return syntaxError
}

package snippet

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// Target is where a snippet file is written and the package it declares.
type Target struct {
	Path    string
	Package string
	// ImportPath is the import path of the target directory, empty outside
	// a module.
	ImportPath string
}

// ResolveTarget works out the package for a snippet file written to
// snippetPath. A package clause of another non-test Go file in the directory
// wins. The snippet file itself is ignored since it gets replaced. Otherwise
// the package is named after the last import path element, or after the
// directory outside a module.
func ResolveTarget(snippetPath string) (Target, error) {
	absPath, err := filepath.Abs(snippetPath)
	if err != nil {
		return Target{}, err
	}
	target := Target{Path: absPath}
	dir := filepath.Dir(absPath)

	declared, err := declaredPackage(dir, filepath.Base(absPath))
	if err != nil {
		return target, err
	}

	if root, modulePath, found := findModule(dir); found {
		target.ImportPath = importPath(root, modulePath, dir)
	}

	switch {
	case declared != "":
		target.Package = declared
	case target.ImportPath != "":
		target.Package = packageIdent(lastElement(target.ImportPath))
	default:
		target.Package = packageIdent(filepath.Base(dir))
	}

	if target.Package == "" {
		return target, fmt.Errorf("cannot derive package name for %s", snippetPath)
	}
	return target, nil
}

func declaredPackage(dir, skip string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == skip || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if err != nil || f.Name == nil {
			continue
		}
		return f.Name.Name, nil
	}
	return "", nil
}

// findModule walks up from dir to the nearest go.mod.
func findModule(dir string) (root, modulePath string, found bool) {
	for current := dir; ; {
		data, err := os.ReadFile(filepath.Join(current, "go.mod"))
		if err == nil {
			if modulePath = modfile.ModulePath(data); modulePath != "" {
				return current, modulePath, true
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", "", false
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", "", false
		}
		current = parent
	}
}

func importPath(root, modulePath, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return modulePath
	}
	return path.Join(modulePath, filepath.ToSlash(rel))
}

// lastElement drops a major version suffix such as /v2 before taking the
// last element.
func lastElement(importPath string) string {
	if prefix, _, ok := module.SplitPathVersion(importPath); ok && prefix != "" {
		importPath = prefix
	}
	return path.Base(importPath)
}

// packageIdent turns raw into a lower case identifier. Separators become
// underscores and a leading digit gets an underscore prefix.
func packageIdent(raw string) string {
	ident := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '-', r == '.', r == '_':
			return '_'
		}
		return -1
	}, raw)
	ident = strings.Trim(ident, "_")

	switch {
	case ident == "":
		return ""
	case unicode.IsDigit(rune(ident[0])):
		return "_" + ident
	case token.IsKeyword(ident):
		return ident + "_"
	}
	return ident
}

package report

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`<[^<>]+>`)

// outlineBaseName strips the outline keyword prefix from the outline's
// display name.
func outlineBaseName(outline *Record) string {
	return strings.TrimSpace(strings.TrimPrefix(outline.Test, outline.Keyword+":"))
}

// belongsToOutline reports whether a scenario named name is a row of
// outline. The row name must contain the outline base name; placeholders in
// the base name match any text.
func belongsToOutline(name string, outline *Record) bool {
	base := outlineBaseName(outline)
	if !placeholderPattern.MatchString(base) {
		return strings.Contains(name, base)
	}

	literals := placeholderPattern.Split(base, -1)
	for i, literal := range literals {
		literals[i] = regexp.QuoteMeta(literal)
	}
	matcher, err := regexp.Compile(strings.Join(literals, ".*?"))
	if err != nil {
		return false
	}
	return matcher.MatchString(name)
}

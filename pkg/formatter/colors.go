package formatter

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"

	colorKeyword      = "\033[38;2;207;142;109m" // #CF8E6D keywords (Feature:, Scenario:, Given, etc.)
	colorText         = "\033[38;2;188;190;196m" // #BCBEC4 step text, feature/scenario names
	colorOutlineParam = "\033[38;2;199;125;187m" // #C77DBB <placeholder> params
	colorSkipped      = "\033[38;2;111;115;122m" // #6F737A skipped step text
)

// Symbols for step status
const (
	symbolPass      = "✓"
	symbolFail      = "✗"
	symbolSkip      = "-"
	symbolUndefined = "?"
)

// ColorsEnabled reports whether colored output should be written to w: w must
// be a terminal and neither NO_COLOR nor TERM=dumb may be set.
func ColorsEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

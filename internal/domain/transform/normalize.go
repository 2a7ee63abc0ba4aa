package transform

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonNumeric      = regexp.MustCompile(`[^0-9]`)
	specialChars    = regexp.MustCompile(`[^a-zA-Z0-9\s\-]`)
)

// NormalizeWhitespace collapses runs of whitespace to single spaces
// and trims the result.
func NormalizeWhitespace(value string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(value, " "))
}

func normalizeWhitespaceOp(value string, _ Params) string {
	return NormalizeWhitespace(value)
}

func normalizeAlphanumericOp(value string, _ Params) string {
	return nonAlphanumeric.ReplaceAllString(value, "")
}

func normalizeNumericOp(value string, _ Params) string {
	return nonNumeric.ReplaceAllString(value, "")
}

func normalizeRemoveSpecialOp(value string, _ Params) string {
	return specialChars.ReplaceAllString(value, "")
}

package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	controlRegex = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// PlainText removes HTML tags and control characters, unescapes entities
// and normalizes whitespace.
func PlainText(input string) string {
	cleaned := htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	cleaned = controlRegex.ReplaceAllString(cleaned, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// Truncate shortens s to at most max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}

// Excerpt is the plain-text summary shown on cards.
func Excerpt(markup string, max int) string {
	return Truncate(PlainText(markup), max)
}

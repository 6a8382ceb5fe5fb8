package tokenizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"strings"
)

// word characters are letters, combining marks, digits and underscore
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)

// Normalize removes everything that is neither a word character nor whitespace,
// trims the result and lowercases it with Turkish casing rules (I -> ı, İ -> i).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = nonWordPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	// a Caser keeps state, so it is not shared between calls
	return cases.Lower(language.Turkish).String(text)
}

// Lower lowercases a single form with Turkish casing rules.
func Lower(form string) string {
	return cases.Lower(language.Turkish).String(form)
}

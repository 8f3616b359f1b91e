// Package placeholder detects interpolation variables in extracted message
// text so the catalog can mark format strings.
package placeholder

import "regexp"

// patterns to detect interpolation variables in message strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %f, %2d, etc.
}

// printfPattern is the subset of patterns that marks a printf-style format
// string.
var printfPattern = patterns[2]

// Detect returns the interpolation variables found in text, in order of
// appearance.
func Detect(text string) []string {
	var found []string
	for _, p := range patterns {
		found = append(found, p.FindAllString(text, -1)...)
	}
	return found
}

// Flags returns the gettext format flags describing the placeholder style
// of the given message strings. Empty when none contains a format directive.
func Flags(texts ...string) []string {
	for _, t := range texts {
		if printfPattern.MatchString(t) {
			return []string{"javascript-format"}
		}
	}
	return nil
}
